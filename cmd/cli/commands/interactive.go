package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Start a session that keeps the database connection open between commands",
		Long: `Start an interactive session where you can run multiple commands against one connection.
Use 'as <email>' to switch the user commands act on behalf of.
The session will keep running until you type 'exit' or 'quit'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			commands := siblingCommands(cmd)
			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print(prompt(app.As))

				if !scanner.Scan() {
					break
				}

				parts, err := parseCommandLine(strings.TrimSpace(scanner.Text()))
				if err != nil {
					fmt.Printf("✗ Error parsing command: %v\n\n", err)
					continue
				}
				if len(parts) == 0 {
					continue
				}
				cmdName, cmdArgs := parts[0], parts[1:]

				switch cmdName {
				case "exit", "quit":
					fmt.Println("Goodbye!")
					return nil
				case "help":
					printInteractiveHelp(commands)
					continue
				case "as":
					if len(cmdArgs) != 1 {
						fmt.Printf("✗ Usage: as <email>\n\n")
						continue
					}
					app.As = cmdArgs[0]
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("✗ Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				if err := runInSession(targetCmd, cmdArgs); err != nil {
					fmt.Printf("✗ Error: %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}
}

// siblingCommands returns the root's commands that make sense inside a session
func siblingCommands(cmd *cobra.Command) map[string]*cobra.Command {
	skip := map[string]bool{"interactive": true, "completion": true, "help": true, "serve": true}

	commands := make(map[string]*cobra.Command)
	for _, subCmd := range cmd.Parent().Commands() {
		if !skip[subCmd.Name()] {
			commands[subCmd.Name()] = subCmd
		}
	}
	return commands
}

// runInSession runs the command's RunE directly. Going through Execute()
// would rerun PersistentPreRunE and open a second connection pool.
func runInSession(target *cobra.Command, args []string) error {
	target.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	})

	if err := target.ParseFlags(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	args = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, args); err != nil {
			return err
		}
	}

	if target.RunE != nil {
		return target.RunE(target, args)
	}
	if target.Run != nil {
		target.Run(target, args)
	}
	return nil
}

func prompt(as string) string {
	if as == "" {
		return "> "
	}
	return fmt.Sprintf("[%s] > ", as)
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cmd := commands[name]
		fmt.Printf("  %-45s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Printf("\n  %-45s %s\n", "as <email>", "Act on behalf of another user")
	fmt.Printf("  %-45s %s\n", "help", "Show this help message")
	fmt.Printf("  %-45s %s\n\n", "exit, quit", "Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting single
// and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
