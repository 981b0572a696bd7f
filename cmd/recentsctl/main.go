package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"recents-server/internal/database"
	"recents-server/internal/logging"
	"recents-server/internal/playlist"
	"recents-server/internal/recents"
	"recents-server/internal/startup"
)

const (
	// Default timeout for database operations
	defaultTimeout = 30 * time.Second
)

var (
	yesFlag     = pflag.BoolP("yes", "y", false, "Do not ask for confirmation")
	verboseFlag = pflag.BoolP("verbose", "v", false, "Enable debug logging")
)

var errUsage = errors.New("usage error")

func main() {
	pflag.Usage = printUsage
	pflag.Parse()

	if *verboseFlag {
		logging.SetLevel(logging.LevelDebug)
	} else {
		logging.SetLevel(logging.LevelWarn)
	}

	args := pflag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	// Create a context that cancels on interrupt signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nInterrupted, shutting down...")
		cancel()
	}()

	startup.LoadEnvFile()
	config, err := startup.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, config.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to connect to database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Make sure DATABASE_DIR is set correctly (current: %s)\n", config.DatabaseDir)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
	}()

	list, err := recents.New(ctx, config.Recents(), db, nil, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	c := &cli{
		list:        list,
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
		assumeYes:   *yesFlag,
	}
	if err := c.run(ctx, args); err != nil {
		if errors.Is(err, errUsage) {
			printUsage()
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err) //nolint:gosec // G705 - unknown commands are sanitized via allowlist in sanitizeCommand
		os.Exit(1)
	}
}

// cli runs one command against a recents list.
type cli struct {
	list        *recents.List
	in          io.Reader
	out         io.Writer
	interactive bool
	assumeYes   bool
}

func (c *cli) run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	command, rest := args[0], args[1:]
	switch command {
	case "list":
		return c.listRecents()
	case "add":
		if len(rest) == 0 {
			return fmt.Errorf("%w: add needs at least one MRL", errUsage)
		}
		return c.addRecents(ctx, rest)
	case "remove":
		if len(rest) != 1 {
			return fmt.Errorf("%w: remove needs exactly one MRL", errUsage)
		}
		return c.removeRecent(rest[0])
	case "clear":
		return c.clearRecents()
	case "export":
		limit := 0
		if len(rest) > 0 {
			n, err := strconv.Atoi(rest[0])
			if err != nil || n < 0 {
				return fmt.Errorf("%w: limit must be a non-negative integer", errUsage)
			}
			limit = n
		}
		return c.exportRecents(limit)
	case "import":
		if len(rest) != 1 {
			return fmt.Errorf("%w: import needs a WPL file", errUsage)
		}
		return c.importPlaylist(ctx, rest[0])
	default:
		// Sanitize command input using allowlist to break taint chain
		return fmt.Errorf("%w: unknown command %s", errUsage, sanitizeCommand(command))
	}
}

// sanitizeCommand returns a safe representation of a command string for display.
// It uses an allowlist approach, replacing any character that is not alphanumeric,
// a hyphen, or an underscore with '_'.
func sanitizeCommand(cmd string) string {
	var b strings.Builder
	b.Grow(len(cmd))
	for _, r := range cmd {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func printUsage() {
	fmt.Println("Recently Played List Management")
	fmt.Println("")
	fmt.Println("Usage: recentsctl [flags] <command> [args]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - Print the list, most recent first")
	fmt.Println("  add <mrl>...    - Record MRLs as played")
	fmt.Println("  remove <mrl>    - Forget a single MRL")
	fmt.Println("  clear           - Empty the list")
	fmt.Println("  export [limit]  - Write the list as a WPL playlist to stdout")
	fmt.Println("  import <file>   - Record the media sources of a WPL playlist")
	fmt.Println("")
	fmt.Println("Flags:")
	pflag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Environment:")
	fmt.Println("  DATABASE_DIR - Path to database directory (default: /database)")
}

func (c *cli) listRecents() error {
	entries := c.list.Snapshot()
	if !c.list.Enabled() {
		fmt.Fprintln(c.out, "Recently played list is disabled (RECENTPLAY=false)")
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No recently played items")
		return nil
	}
	for i, mrl := range entries {
		fmt.Fprintf(c.out, "%2d. %s\n", i+1, mrl)
	}
	return nil
}

// addRecents records mrls in argument order, so the last one ends up first.
func (c *cli) addRecents(ctx context.Context, mrls []string) error {
	for _, mrl := range mrls {
		if err := ctx.Err(); err != nil {
			return err
		}
		mrl = strings.TrimSpace(mrl)
		if mrl == "" {
			continue
		}
		c.list.AddRecent(mrl)
	}
	fmt.Fprintf(c.out, "%d recently played items\n", c.list.Len())
	return nil
}

func (c *cli) removeRecent(mrl string) error {
	if !c.list.Remove(mrl) {
		return fmt.Errorf("%s is not in the recently played list", mrl)
	}
	fmt.Fprintln(c.out, "Removed.")
	return nil
}

func (c *cli) clearRecents() error {
	n := c.list.Len()
	if n == 0 {
		fmt.Fprintln(c.out, "Recently played list is already empty")
		return nil
	}

	if c.interactive && !c.assumeYes && !c.confirm(fmt.Sprintf("Clear %d recently played items?", n)) {
		fmt.Fprintln(c.out, "Aborted.")
		return nil
	}

	c.list.Clear()
	fmt.Fprintf(c.out, "Cleared %d recently played items.\n", n)
	return nil
}

func (c *cli) confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *cli) exportRecents(limit int) error {
	node, err := playlist.NewTree().Materialize(c.list.Snapshot(), limit)
	if err != nil {
		return err
	}
	data, err := playlist.ExportWPL(node)
	if err != nil {
		return fmt.Errorf("failed to export playlist: %w", err)
	}
	_, err = c.out.Write(data)
	return err
}

// importPlaylist records the sources of a WPL file. The file lists the most
// recent item first, so entries are added back to front.
func (c *cli) importPlaylist(ctx context.Context, path string) error {
	node, err := playlist.ParseWPL(path)
	if err != nil {
		return fmt.Errorf("failed to read playlist: %w", err)
	}

	mrls := node.MRLs()
	for i := len(mrls) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.list.AddRecent(mrls[i])
	}
	fmt.Fprintf(c.out, "Imported %d items from %q; %d recently played items\n", len(mrls), node.Name, c.list.Len())
	return nil
}
