package tabular

import (
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func requireColumns(t *Table, columns ...string) error {
	for _, col := range columns {
		if !t.Has(col) {
			return errors.Wrapf(ErrMalformedTable, "%s: coluna obrigatória ausente %q", t.Name, col)
		}
	}
	return nil
}

func requiredID(t *Table, row int, column string) (int64, error) {
	raw := t.Value(row, column)
	if raw == nil {
		return 0, errors.Wrapf(ErrMalformedTable, "%s: linha %d sem %s", t.Name, row+1, column)
	}

	id, err := ParseID(*raw)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedTable, "%s: linha %d: %s: %v", t.Name, row+1, column, err)
	}

	return id, nil
}

func optionalID(t *Table, row int, column string) (*int64, error) {
	id, err := ParseOptionalID(t.Value(row, column))
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedTable, "%s: linha %d: %s: %v", t.Name, row+1, column, err)
	}
	return id, nil
}

func DecodeCategories(t *Table) ([]domain.Category, error) {
	if err := requireColumns(t, domain.ColumnID); err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		id, err := requiredID(t, i, domain.ColumnID)
		if err != nil {
			return nil, err
		}

		categories = append(categories, domain.Category{
			ID:   id,
			Name: textOrEmpty(t.Value(i, domain.ColumnCategoryName)),
		})
	}

	return categories, nil
}

func DecodeBrands(t *Table) ([]domain.Brand, error) {
	if err := requireColumns(t, domain.ColumnID); err != nil {
		return nil, err
	}

	brands := make([]domain.Brand, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		id, err := requiredID(t, i, domain.ColumnID)
		if err != nil {
			return nil, err
		}

		brands = append(brands, domain.Brand{
			ID:   id,
			Name: textOrEmpty(t.Value(i, domain.ColumnBrandName)),
		})
	}

	return brands, nil
}

func DecodeProducts(t *Table) ([]domain.Product, error) {
	if err := requireColumns(t, domain.ColumnID); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		id, err := requiredID(t, i, domain.ColumnID)
		if err != nil {
			return nil, err
		}

		categoryID, err := optionalID(t, i, domain.ColumnCategoryID)
		if err != nil {
			return nil, err
		}

		brandID, err := optionalID(t, i, domain.ColumnBrandID)
		if err != nil {
			return nil, err
		}

		products = append(products, domain.Product{
			ID:         id,
			CategoryID: categoryID,
			BrandID:    brandID,
			Name:       textOrEmpty(t.Value(i, domain.ColumnProductName)),
			Price:      ParseOptionalFloat(t.Value(i, domain.ColumnPrice)),
		})
	}

	return products, nil
}

func DecodeCustomers(t *Table) ([]domain.Customer, error) {
	if err := requireColumns(t, domain.ColumnID); err != nil {
		return nil, err
	}

	customers := make([]domain.Customer, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		id, err := requiredID(t, i, domain.ColumnID)
		if err != nil {
			return nil, err
		}

		customers = append(customers, domain.Customer{
			ID:        id,
			Name:      textOrEmpty(t.Value(i, domain.ColumnCustomerName)),
			Surname:   textOrEmpty(t.Value(i, domain.ColumnSurname)),
			Birthdate: ParseOptionalTime(t.Value(i, domain.ColumnBirthdate)),
		})
	}

	return customers, nil
}

// DecodeEvents converte a tabela de eventos; visitorid só é obrigatório quando a coluna existe
func DecodeEvents(t *Table) ([]domain.Event, error) {
	hasVisitor := t.Has(domain.ColumnVisitorID)

	events := make([]domain.Event, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		var visitorID int64
		if hasVisitor {
			id, err := requiredID(t, i, domain.ColumnVisitorID)
			if err != nil {
				return nil, err
			}
			visitorID = id
		}

		itemID, err := optionalID(t, i, domain.ColumnItemID)
		if err != nil {
			return nil, err
		}

		events = append(events, domain.Event{
			VisitorID:     visitorID,
			EventType:     textOrEmpty(t.Value(i, domain.ColumnEventType)),
			ItemID:        itemID,
			TransactionID: ParseOptionalText(t.Value(i, domain.ColumnTransactionID)),
			EventTime:     ParseOptionalTime(t.Value(i, domain.ColumnEventTime)),
			Date:          ParseOptionalTime(t.Value(i, domain.ColumnDate)),
		})
	}

	return events, nil
}
