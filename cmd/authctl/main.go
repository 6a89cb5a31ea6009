// Package main содержит точку входа CLI-клиента authctl.
//
// Версия и дата сборки передаются через -ldflags:
//
//	go build -ldflags "-X main.buildVersion=1.0.0 -X main.buildDate=2026-01-16" ./cmd/authctl
package main

import "github.com/IvanChernomyrdin/go-authflow/internal/agent/cli"

var (
	// buildVersion содержит версию приложения, передаваемую при сборке.
	buildVersion = "dev"
	// buildDate содержит дату сборки приложения.
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
