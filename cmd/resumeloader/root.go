package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/talentgrid/resumatch/internal/version"
	resumatch "github.com/talentgrid/resumatch/pkg/sdk"
)

const app = "resumeloader"

var (
	// Used for flags.
	serverURL  string
	apiKey     string
	timeoutSec int

	rootCmd = &cobra.Command{
		Use:     app,
		Short:   "resumeloader loads resume dumps into resumatch and runs ad-hoc searches",
		Version: version.Version,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:8080", "resumatch server base URL")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "api-key", "k", "", "API key (defaults to RESUMATCH_API_KEY)")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 60, "request timeout in seconds")
}

func newClient() *resumatch.Client {
	key := apiKey
	if key == "" {
		key = os.Getenv("RESUMATCH_API_KEY")
	}
	return resumatch.New(serverURL,
		resumatch.WithAPIKey(key),
		resumatch.WithTimeout(time.Duration(timeoutSec)*time.Second),
	)
}
