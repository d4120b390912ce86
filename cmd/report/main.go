package main

import "github.com/vfg2006/sales-dashboard-api/internal/cmd"

func main() {
	cmd.Execute()
}
