// Package cli implements shopctl, a command-line client for the shop backend.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/diewo77/go-shop/internal/api"
)

const defaultAPIURL = "http://localhost:8000/api/v1"

// options are the persistent flags shared by every subcommand.
type options struct {
	apiURL     string
	token      string
	jsonOutput bool
	timeout    time.Duration
}

// resolveAPIURL returns the API URL from flag, env, or default (in priority order).
func (o *options) resolveAPIURL() string {
	if o.apiURL != "" {
		return o.apiURL
	}
	for _, key := range []string{"SHOP_API_URL", "API_BASE_URL"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return defaultAPIURL
}

// resolveToken returns the access token from flag or SHOP_TOKEN.
func (o *options) resolveToken() string {
	if o.token != "" {
		return o.token
	}
	return os.Getenv("SHOP_TOKEN")
}

func (o *options) client() *api.Client {
	return api.New(o.resolveAPIURL(), api.WithTimeout(o.timeout))
}

// NewRootCmd builds the shopctl command tree writing to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "shopctl",
		Short: "CLI for the ShopHub backend",
		Long: `shopctl talks to the same REST API as the storefront.

Environment Variables:
  SHOP_API_URL   Backend API URL (default: ` + defaultAPIURL + `)
  SHOP_TOKEN     Access token used by authenticated commands`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&o.apiURL, "api-url", "", "Backend API URL (overrides SHOP_API_URL)")
	root.PersistentFlags().StringVar(&o.token, "token", "", "Access token (overrides SHOP_TOKEN)")
	root.PersistentFlags().BoolVar(&o.jsonOutput, "json", false, "Output JSON instead of human-readable text")
	root.PersistentFlags().DurationVar(&o.timeout, "timeout", 10*time.Second, "Backend request timeout")

	root.AddCommand(newLoginCmd(o), newMeCmd(o), newProductsCmd(o), newSessionsCmd(o))
	return root
}

// Execute runs shopctl with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCmd(os.Stdout).ExecuteContext(ctx)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe turns backend errors into a one-line message.
func describe(err error) error {
	switch api.KindOf(err) {
	case api.KindUnavailable:
		return fmt.Errorf("backend unreachable: %w", err)
	case api.KindUnauthorized:
		return fmt.Errorf("not authenticated (check --token or SHOP_TOKEN): %w", err)
	case api.KindForbidden:
		return fmt.Errorf("permission denied: %w", err)
	default:
		return err
	}
}
