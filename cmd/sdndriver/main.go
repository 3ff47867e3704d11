// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/opensdn-io/neutron-driver/pkg/config"
	"github.com/opensdn-io/neutron-driver/pkg/driver"
	"github.com/opensdn-io/neutron-driver/pkg/extension"
	"github.com/opensdn-io/neutron-driver/pkg/resource"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:           "sdndriver",
		Short:         "Neutron core driver for the OpenSDN controller",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "driver.yaml", "path to the driver configuration file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newCheckConfigCommand(&configPath),
		newExtensionsCommand(&configPath, &debug),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the driver version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// check-config loads and validates the configuration without contacting
// the controller, so it is safe to run during packaging and deploys.
func newCheckConfigCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the driver configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			for _, desc := range cfg.Extensions {
				if desc.Class == "" || desc.Class == config.ExtensionClassNone {
					continue
				}
				if _, err := extension.Resolve(desc.Class); err != nil {
					return fmt.Errorf("extension %q: %w", desc.Name, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration %s is valid\n", *configPath)
			return nil
		},
	}
}

// extensions builds the driver against a disconnected backend and prints
// the extension aliases that would be advertised.
func newExtensionsCommand(configPath *string, debug *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "extensions",
		Short: "List the extension aliases the driver would advertise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := newLogger(*debug)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			d, err := driver.New(cfg, disconnectedBackend{},
				driver.WithLogger(log),
				driver.WithResolver(extension.Default))
			if err != nil {
				return err
			}
			for _, alias := range d.SupportedExtensionAliases() {
				fmt.Fprintln(cmd.OutOrStdout(), alias)
			}
			return nil
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// disconnectedBackend rejects every call. Extension loading never touches
// the backend, so it is sufficient for introspection commands.
type disconnectedBackend struct{}

var errDisconnected = fmt.Errorf("no backend connection")

func (disconnectedBackend) CreateResource(context.Context, resource.Kind, resource.Record) (resource.Record, error) {
	return nil, errDisconnected
}

func (disconnectedBackend) GetResource(context.Context, resource.Kind, string, []string) (resource.Record, error) {
	return nil, errDisconnected
}

func (disconnectedBackend) UpdateResource(context.Context, resource.Kind, string, resource.Record) (resource.Record, error) {
	return nil, errDisconnected
}

func (disconnectedBackend) DeleteResource(context.Context, resource.Kind, string) error {
	return errDisconnected
}

func (disconnectedBackend) ListResource(context.Context, resource.Kind, resource.Filters, []string) ([]resource.Record, error) {
	return nil, errDisconnected
}

func (disconnectedBackend) CountResource(context.Context, resource.Kind, resource.Filters) (resource.CountResult, error) {
	return resource.CountResult{}, errDisconnected
}
