// Package main provides the cnpjdb CLI application.
// cnpjdb downloads CNPJ open data, extracts full or referentially
// consistent sample files and bulk-loads them into PostgreSQL.
package main

import "github.com/gnames/cnpjdb/cmd"

func main() {
	cmd.Execute()
}
