package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Lucretiel/alphasign/internal/transport"
	"github.com/Lucretiel/alphasign/pkg/alphasign"
)

var (
	rootCmd = &cobra.Command{
		Use:           "alphasign-ctl",
		Short:         "Control Alpha-protocol LED signs",
		Long:          "alphasign-ctl sends commands to Alpha-protocol LED signs and inspects their memory tables.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	deviceURL  string
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceURL, "device", "", "device URL, e.g. serial:///dev/ttyUSB0?baud=4800 or tcp://10.0.0.5:10001")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log wire traffic")

	rootCmd.AddCommand(beepCmd(), resetCmd(), clearCmd(), tableCmd(), allocCmd(), sequenceCmd())
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func openSign() (*alphasign.Sign, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	device := cfg.Device
	if deviceURL != "" {
		device = deviceURL
	}
	if cfg.Verbose {
		verbose = true
	}
	t, err := transport.Open(device)
	if err != nil {
		return nil, err
	}
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
		t = transport.WithLogging(t, logrus.StandardLogger())
	}
	return alphasign.New(t), nil
}

func beepCmd() *cobra.Command {
	var (
		frequency int
		duration  time.Duration
		repeat    int
	)
	cmd := &cobra.Command{
		Use:   "beep",
		Short: "Make the sign beep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sign, err := openSign()
			if err != nil {
				return err
			}
			defer sign.Close()
			return sign.Beep(frequency, duration, repeat)
		},
	}
	cmd.Flags().IntVar(&frequency, "frequency", 0, "pitch value 0-254 (not Hz)")
	cmd.Flags().DurationVar(&duration, "duration", 100*time.Millisecond, "beep duration, 0.1s-1.5s")
	cmd.Flags().IntVar(&repeat, "repeat", 0, "number of repeats, 0-15")
	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Soft-reset the sign without clearing its memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sign, err := openSign()
			if err != nil {
				return err
			}
			defer sign.Close()
			return sign.SoftReset()
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the sign's memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sign, err := openSign()
			if err != nil {
				return err
			}
			defer sign.Close()
			return sign.ClearMemory()
		},
	}
}

func tableCmd() *cobra.Command {
	var (
		lenient bool
		strict  bool
	)
	cmd := &cobra.Command{
		Use:   "table [label]",
		Short: "Read the sign's memory table, or one entry by label",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sign, err := openSign()
			if err != nil {
				return err
			}
			defer sign.Close()
			if len(args) == 1 {
				label, err := parseLabel(args[0])
				if err != nil {
					return err
				}
				entry, err := sign.ReadMemoryTableEntry(label)
				if err != nil {
					return err
				}
				fmt.Println(alphasign.MemoryTable{entry}.String())
				return nil
			}
			table, err := sign.ReadMemoryTableWithOptions(alphasign.ReadOptions{
				Lenient:        lenient,
				VerifyChecksum: strict,
			})
			if err != nil {
				return err
			}
			fmt.Println(table.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&lenient, "lenient", false, "skip undecodable records instead of failing")
	cmd.Flags().BoolVar(&strict, "verify-checksum", false, "reject tables whose checksum does not match")
	return cmd
}

func allocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alloc LABEL:SIZE[:string]...",
		Short: "Allocate file slots on the sign",
		Long: "Allocate file slots on the sign. Each argument is LABEL:SIZE, with an\n" +
			"optional :string suffix for locked STRING slots. Five reserved TARGET\n" +
			"TEXT slots are always allocated after the requested ones.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]alphasign.FileDescriptor, 0, len(args))
			for _, arg := range args {
				fd, err := parseFileSpec(arg)
				if err != nil {
					return err
				}
				files = append(files, fd)
			}
			sign, err := openSign()
			if err != nil {
				return err
			}
			defer sign.Close()
			return sign.Allocate(files)
		},
	}
}

func sequenceCmd() *cobra.Command {
	var locked bool
	cmd := &cobra.Command{
		Use:   "sequence LABELS",
		Short: "Set the order in which file slots are displayed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sign, err := openSign()
			if err != nil {
				return err
			}
			defer sign.Close()
			return sign.SetRunSequence(args[0], locked)
		},
	}
	cmd.Flags().BoolVar(&locked, "locked", false, "prevent changes from the IR keyboard")
	return cmd
}

func parseLabel(arg string) (byte, error) {
	if len(arg) != 1 || arg[0] < 0x20 || arg[0] > 0x7F {
		return 0, fmt.Errorf("label must be a single printable character, got %q", arg)
	}
	return arg[0], nil
}

func parseFileSpec(arg string) (alphasign.FileDescriptor, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return alphasign.FileDescriptor{}, fmt.Errorf("bad file spec %q, want LABEL:SIZE[:string]", arg)
	}
	label, err := parseLabel(parts[0])
	if err != nil {
		return alphasign.FileDescriptor{}, err
	}
	size, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return alphasign.FileDescriptor{}, fmt.Errorf("bad size in %q: %w", arg, err)
	}
	fd := alphasign.FileDescriptor{Label: label, Size: uint16(size)}
	if len(parts) == 3 {
		if parts[2] != "string" {
			return alphasign.FileDescriptor{}, fmt.Errorf("bad file kind %q in %q, only \"string\" is accepted", parts[2], arg)
		}
		fd.IsString = true
	}
	return fd, nil
}
