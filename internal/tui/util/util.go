package util

import (
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

type Model interface {
	tea.Model
	tea.ViewModel
}

// Sizeable is implemented by components that lay themselves out in a
// given area.
type Sizeable interface {
	SetSize(width, height int) tea.Cmd
}

func CmdHandler(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}

// userMessage is implemented by errors that carry a short, user facing
// text distinct from their full error chain.
type userMessage interface {
	UserMessage() string
}

// ErrorText returns the text to show the user for err.
func ErrorText(err error) string {
	var um userMessage
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	return err.Error()
}

func ReportError(err error) tea.Cmd {
	slog.Error("Error reported", "error", err)
	return CmdHandler(InfoMsg{
		Type: InfoTypeError,
		Msg:  ErrorText(err),
	})
}

type InfoType int

const (
	InfoTypeInfo InfoType = iota
	InfoTypeSuccess
	InfoTypeWarn
	InfoTypeError
)

func ReportInfo(info string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeInfo,
		Msg:  info,
	})
}

func ReportSuccess(msg string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeSuccess,
		Msg:  msg,
	})
}

func ReportWarn(warn string) tea.Cmd {
	return CmdHandler(InfoMsg{
		Type: InfoTypeWarn,
		Msg:  warn,
	})
}

type (
	InfoMsg struct {
		Type InfoType
		Msg  string
		TTL  time.Duration
	}
	ClearStatusMsg struct{}
)
