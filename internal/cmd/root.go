// Package cmd contém os comandos de linha de comando do dashboard
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sales-dashboard",
	Short: "Relatórios do dashboard de vendas",
	Long: `Gera o mesmo dashboard servido pela API a partir das tabelas limpas
(categoria, cliente, events, marca e producto), lidas de CSV ou PostgreSQL.`,
	SilenceUsage: true,
}

// Execute roda o comando raiz
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
