// @title        Case Management System API
// @version      1.0
// @description  Gestão de casos de suporte com pontuação de complexidade, tarefas, tipificações e base de conhecimento.
// @BasePath     /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"fmt"
	"os"

	"case-management-system/cmd/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
