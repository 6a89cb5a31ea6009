package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-authflow/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = func(cmd *cobra.Command, prompt string) (string, error) {
		return readPasswordTerminal(cmd, prompt)
	}
	Now = time.Now
)
