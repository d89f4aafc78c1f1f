package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dayforge/dayforge"
	"github.com/dayforge/dayforge/msal"
	"github.com/dayforge/dayforge/rest"
)

const programUsage = `Usage:
  dayforge: open the dashboard
  dayforge /a <task>: add a task without opening the dashboard
  dayforge /h: this help`

var logger dayforge.Logger

func main() {
	// conf
	conf := dayforge.LoadConfig()
	if err := os.MkdirAll(filepath.Dir(conf.LogPath), 0o744); err != nil {
		panic(err)
	}
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		panic(err)
	}
	defer f.Close() //nolint:errcheck
	logger = configLogger(conf.LogLevel, f)
	logger.Info("loaded config", "config", conf)

	// session provider + api client
	tokens, err := msal.NewProvider(conf, logger)
	if err != nil {
		logger.Error("failed identity client init", "error", err)
		fmt.Println("Could not initialize sign-in. Check DAYFORGE_CLIENT_ID and DAYFORGE_AUTHORITY.")
		os.Exit(1)
	}
	api := rest.NewClient(conf.APIBaseURL, tokens, logger)

	// handle initial args
	timeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts, err := parseProgramArgs(timeout, api)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if opts.showHelp {
		fmt.Println(colorize(colorYellow, programUsage))
		os.Exit(0)
	}
	if opts.shouldExit {
		os.Exit(0)
	}

	// start program
	userinput := textinput.New()
	userinput.Focus()
	userinput.CharLimit = 280
	userinput.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))

	m := model{
		l:          logger,
		api:        api,
		tokens:     tokens,
		timeFormat: conf.TimeFormat,
		priority:   dayforge.PriorityMedium,
		habits:     newHabitsForm(),
		cmdTimeout: 10 * time.Second,
		genTimeout: 90 * time.Second,
		userinput:  userinput,
		spin:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		vp:         viewport.New(0, 0),
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}

func configLogger(level string, w io.Writer) dayforge.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		panic(err)
	}

	return log.NewWithOptions(w, log.Options{
		Level: lvl,
	})
}

type options struct {
	showHelp   bool
	shouldExit bool
}

func parseProgramArgs(ctx context.Context, api dayforge.TaskAPI) (options, error) {
	var opts options

	if len(os.Args) == 1 {
		return opts, nil
	}

	cmd := os.Args[1]
	arg := strings.Join(os.Args[2:], " ")

	logger.Debug("parsed program args", "cmd", cmd, "arg", arg)
	switch cmd {
	case "/a":
		if strings.TrimSpace(arg) == "" {
			opts.showHelp = true
			return opts, nil
		}
		created, err := api.CreateTask(ctx, arg, dayforge.PriorityMedium)
		if err != nil {
			return options{}, fmt.Errorf("failed to add task: %w", err)
		}
		fmt.Printf("Added %q\n", created.Text)
		opts.shouldExit = true
		return opts, nil
	default:
		opts.showHelp = true
		return opts, nil
	}
}
