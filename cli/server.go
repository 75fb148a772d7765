package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hdt3213/tcplite/config"
	"github.com/hdt3213/tcplite/tcp"
)

var serverCmd = &cobra.Command{
	Use:   "server <ip> <port>",
	Short: "Run the greeting server on the given address",
	Long: `Run the greeting server bound to <ip>:<port>.

Examples:
  tcplite server 0.0.0.0 7379
  tcplite server 127.0.0.1 7379 --backlog 16`,
	Args: cobra.ExactArgs(2),
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntP("backlog", "b", 5, "pending connection queue length")
	serverCmd.Flags().StringP("config", "c", "", "path to configuration file")
	serverCmd.Flags().Bool("strict-address", true,
		"reject an unparseable bind address instead of falling back to 0.0.0.0")
	serverCmd.MarkFlagFilename("config", "yaml", "yml")
}

func runServer(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	if err := config.Setup(configFile); err != nil {
		return err
	}
	props := config.Properties

	props.Bind = args[0]
	port, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", args[1], err)
	}
	props.Port = uint16(port)
	if cmd.Flags().Changed("backlog") {
		props.Backlog, _ = cmd.Flags().GetInt("backlog")
	}
	if cmd.Flags().Changed("strict-address") {
		props.StrictAddress, _ = cmd.Flags().GetBool("strict-address")
	}
	if err := config.Validate(props); err != nil {
		return err
	}

	return tcp.ListenAndServe(&tcp.Config{
		Bind:    props.Bind,
		Port:    props.Port,
		Backlog: props.Backlog,
	}, tcp.MakeGreetHandlerWithBuffer(props.BufferSize))
}
