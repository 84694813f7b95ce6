package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evbase/escore/config"
	"github.com/evbase/escore/es"
	"github.com/evbase/escore/logging/logger"
)

// NewConsoleCommand creates the interactive console command.
//
// The console reads one command per line and drives the event system through
// its text-invocation interface:
//
//	call <event> [args...]     dispatch synchronously
//	publish <event> [args...]  enqueue for a later drain
//	process                    fire one drain pass
//	drain                      process until the queue stays empty
//	list                       describe the registered events
//	quit                       leave the console
func NewConsoleCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive event console",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Init(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}

			cleanup, err := logger.Init(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %v", err)
			}
			defer cleanup()

			sys := es.New()
			defer sys.Close()
			registerDemoEvents(sys)

			return runConsole(sys, cfg.Console)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	return cmd
}

// registerDemoEvents wires a few events so the console has something to
// drive out of the box.
func registerDemoEvents(sys *es.System) {
	_, _ = sys.Subscribe("greet", func(name string) {
		fmt.Printf("hello, %s\n", name)
	})
	_, _ = sys.Subscribe("coord", func(x int, y float64) {
		fmt.Printf("coord (%d, %g)\n", x, y)
	})
	_, _ = sys.Subscribe("toggle", func(on bool) {
		fmt.Printf("toggled %v\n", on)
	})
}

func runConsole(sys *es.System, cfg *config.Console) error {
	prompt := "> "
	maxPasses := 0
	if cfg != nil {
		if cfg.Prompt != "" {
			prompt = cfg.Prompt
		}
		maxPasses = cfg.MaxPasses
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil

		case "list":
			sys.Describe(os.Stdout)

		case "process":
			if !sys.Process() {
				fmt.Println("queue empty")
			}

		case "drain":
			passes := sys.ProcessUntilEmpty(maxPasses)
			fmt.Printf("%d passes\n", passes)

		case "call", "publish":
			if len(fields) < 2 {
				fmt.Printf("usage: %s <event> [args...]\n", fields[0])
				continue
			}
			name, eventArgs := fields[1], fields[2:]
			var err error
			if fields[0] == "call" {
				err = sys.CallStrings(name, eventArgs)
			} else {
				err = sys.PublishStrings(name, eventArgs)
			}
			if err != nil {
				fmt.Println(err)
			}

		default:
			fmt.Printf("unknown command %q (call, publish, process, drain, list, quit)\n", fields[0])
		}
	}
}
