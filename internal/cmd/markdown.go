package cmd

import (
	"fmt"
	"strings"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func periodLabel(f domain.AppliedFilters) string {
	start, end := f.StartDate, f.EndDate
	if start == "" {
		start = "inicio"
	}
	if end == "" {
		end = "fin"
	}
	return start + " → " + end
}

func renderMarkdown(d *domain.DashboardResponse) string {
	var b strings.Builder
	h, k, v := d.Headline, d.KPIs, d.Views

	fmt.Fprintf(&b, "# Reporte de ventas (%s, %s)\n\n", periodLabel(d.Filters), d.Filters.Category)
	fmt.Fprintf(&b, "- **Ingresos:** $%.2f\n- **Registros de venta:** %d\n- **Visitantes únicos:** %d\n- **Productos activos:** %d de %d\n- **Eventos:** %d (%d tipos)\n\n",
		h.TotalRevenue, h.SalesRecords, h.UniqueVisitors, h.ActiveProducts, h.CatalogSize, h.TotalEvents, h.EventTypes)

	fmt.Fprintf(&b, "## KPIs\n")
	fmt.Fprintf(&b, "- CLV promedio: $%.2f\n- Tasa de conversión: %.2f%%\n- Valor promedio de orden: $%.2f\n- Items por transacción: %.2f\n- Ticket promedio: $%.2f\n- Tasa de repetición: %.2f%%\n\n",
		k.AvgCLV, k.ConversionRate, k.AvgOrderValue, k.AvgItemsPerTransaction, k.AverageTicket, k.RepeatCustomerRate)

	if len(v.CategoryShares) > 0 {
		fmt.Fprintf(&b, "## Ventas por categoría\n")
		for _, c := range v.CategoryShares {
			fmt.Fprintf(&b, "- %s: $%.2f (%.1f%%)\n", c.Name, c.Revenue, c.Share)
		}
		fmt.Fprintln(&b)
	}
	writeNamed(&b, "Top marcas", v.TopBrands)
	if len(v.TopVisitors) > 0 {
		fmt.Fprintf(&b, "## Top clientes\n")
		for _, c := range v.TopVisitors {
			fmt.Fprintf(&b, "- %s: $%.2f\n", c.DisplayName, c.Revenue)
		}
		fmt.Fprintln(&b)
	}
	if len(v.TopProducts) > 0 {
		fmt.Fprintf(&b, "## Top productos\n")
		for _, p := range v.TopProducts {
			fmt.Fprintf(&b, "- %s (#%d): $%.2f\n", p.ProductName, p.ItemID, p.Revenue)
		}
		fmt.Fprintln(&b)
	}
	if len(v.DailyRevenue) > 0 {
		fmt.Fprintf(&b, "## Ingresos diarios\n")
		for _, day := range v.DailyRevenue {
			fmt.Fprintf(&b, "- %s: $%.2f\n", day.Date, day.Revenue)
		}
		fmt.Fprintln(&b)
	}
	if len(v.EventTypes) > 0 {
		fmt.Fprintf(&b, "## Tipos de evento\n")
		for _, e := range v.EventTypes {
			fmt.Fprintf(&b, "- %s: %d\n", e.EventType, e.Count)
		}
		fmt.Fprintln(&b)
	}

	fmt.Fprintf(&b, "_Datos %s cargados en %s_\n", d.DatasetID, d.LoadedAt.Format("2006-01-02 15:04:05"))
	return b.String()
}

func writeNamed(b *strings.Builder, title string, rows []domain.NamedRevenue) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n", title)
	for _, r := range rows {
		fmt.Fprintf(b, "- %s: $%.2f\n", r.Name, r.Revenue)
	}
	fmt.Fprintln(b)
}
