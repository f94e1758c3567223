package bricksculpt

import (
	"errors"
	"fmt"
)

var (
	ErrNoGrid        = errors.New("bricksculpt: session needs a grid")
	ErrNoPicker      = errors.New("bricksculpt: session needs a picker")
	ErrSessionClosed = errors.New("bricksculpt: session is no longer running")
	ErrEventsClosed  = errors.New("bricksculpt: event stream closed")
)

// ReportKind is the severity of an operation outcome.
type ReportKind int

const (
	ReportInfo ReportKind = iota
	ReportWarning
	ReportError
)

func (k ReportKind) String() string {
	switch k {
	case ReportInfo:
		return "INFO"
	case ReportWarning:
		return "WARNING"
	case ReportError:
		return "ERROR"
	}
	return fmt.Sprintf("ReportKind(%d)", int(k))
}

// Result is the outcome of one edit operation. A rejected operation carries
// a kind and a message for the user; the session keeps running.
type Result struct {
	OK      bool
	Kind    ReportKind
	Message string
}

var okResult = Result{OK: true}

func reject(kind ReportKind, format string, args ...any) Result {
	return Result{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (r Result) String() string {
	if r.OK {
		return "ok"
	}
	return fmt.Sprintf("%s: %s", r.Kind, r.Message)
}

// Status is the lifecycle state of a session.
type Status int

const (
	StatusRunning Status = iota
	StatusFinished
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "RUNNING_MODAL"
	case StatusFinished:
		return "FINISHED"
	case StatusCancelled:
		return "CANCELLED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}
