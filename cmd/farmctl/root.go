// cmd/farmctl/root.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/javajoker/farmfresh/internal/client"
	"github.com/javajoker/farmfresh/internal/config"
	"github.com/javajoker/farmfresh/internal/dashboard"
	"github.com/javajoker/farmfresh/internal/models"
)

// app is shared by every subcommand and is filled in by the root's PersistentPreRunE.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	client *client.Client

	apiURL      string
	sessionFile string
	verbose     bool
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "farmctl",
		Short:         "Browse, order and sell fresh produce from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "API base URL (default $FARMFRESH_API_URL)")
	root.PersistentFlags().StringVar(&a.sessionFile, "session", "", "session file (default $FARMFRESH_SESSION_FILE)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every API call to stderr")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.productsCommand(),
		a.orderCommand(),
		a.ordersCommand(),
		a.myProductsCommand(),
		a.addProductCommand(),
		a.editProductCommand(),
		a.deleteProductCommand(),
		a.farmerOrdersCommand(),
	)
	root.AddCommand(a.transitionCommands()...)

	return root
}

func (a *app) setup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logrus.New()
	a.logger.SetOutput(os.Stderr)
	a.logger.SetLevel(logrus.WarnLevel)
	if a.verbose {
		a.logger.SetLevel(logrus.DebugLevel)
	}

	baseURL := cfg.Client.APIBaseURL
	if a.apiURL != "" {
		baseURL = a.apiURL
	}
	path := cfg.Client.SessionFile
	if a.sessionFile != "" {
		path = a.sessionFile
	}

	session, err := client.NewSession(client.NewFileSessionStore(path))
	if err != nil {
		a.logger.WithError(err).Warn("Ignoring unreadable session file")
	}

	a.client = client.New(baseURL, session,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithLogger(a.logger),
		client.WithLanguage(cfg.Client.Locale),
	)
	return nil
}

// failure turns a dashboard error into the message the view would show.
func failure(state dashboard.State, err error) error {
	if state.Message != "" {
		return errors.New(state.Message)
	}
	return err
}

func table(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
}

func parseCategory(s string) (models.Category, error) {
	for _, c := range models.Categories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (expected one of %s)", s, categoryList())
}

func categoryList() string {
	names := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func parseDeliveryType(s string) (models.DeliveryType, error) {
	for _, d := range []models.DeliveryType{models.DeliveryTypeDelivery, models.DeliveryTypePickup} {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown delivery type %q (expected Delivery or Pickup)", s)
}
