// Command cartctl drives the cart sidebar from a terminal against a running
// api process.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cupstory/pkg/cartview"
)

var (
	apiURL  string
	email   string
	timeout time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cartctl",
		Short:         "Inspect and edit a Cupstory cart",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api", envOr("CUPSTORY_API", "http://localhost:3001"), "API base URL")
	root.PersistentFlags().StringVar(&email, "email", os.Getenv("CUPSTORY_EMAIL"), "signed-in account email")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")

	root.AddCommand(showCmd(), badgeCmd(), addCmd(), checkoutCmd())
	return root
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the cart sidebar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			newView(cmd.OutOrStdout()).RenderCartPanel(ctx, session())
			return nil
		},
	}
}

func badgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badge",
		Short: "Print the number of items in the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			newView(cmd.OutOrStdout()).RefreshBadge(ctx, session())
			return nil
		},
	}
}

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PRICE",
		Short: "Add one unit of an item to the cart",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("price %q: %w", args[1], err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return newView(cmd.OutOrStdout()).AddToCart(ctx, session(), args[0], price)
		},
	}
}

func checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Place the order and clear the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return newView(cmd.OutOrStdout()).Checkout(ctx, session())
		},
	}
}

func session() cartview.Session {
	return cartview.Session{Owner: email}
}

func newView(w io.Writer) *cartview.View {
	client := cartview.NewClient(apiURL, &http.Client{})
	return cartview.NewView(client, &terminal{w: w})
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
