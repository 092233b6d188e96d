package contact

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/iburimskiy/portfolio-backdrop/internal/notify"
)

// Launcher hands a mailto URL to whatever composes mail on the host.
type Launcher func(url string) error

// Notifier surfaces the outcome of a submission to the user.
type Notifier interface {
	Show(message string, kind notify.Kind)
}

// State is where a Submitter is in its send cycle.
type State int

const (
	Idle State = iota
	Sending
)

func (s State) String() string {
	if s == Sending {
		return "sending"
	}
	return "idle"
}

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("a message is already being sent")

// Submitter runs the submit cycle: validate, show the sending state for a
// short delay, launch the mail action, confirm, reset.
type Submitter struct {
	Recipient string
	Delay     time.Duration
	Launch    Launcher
	Notifier  Notifier
	// Post runs completion work on the UI goroutine. Nil runs it inline on
	// the timer goroutine.
	Post   func(func())
	Logger *log.Logger
	// OnReset is called after a successful send so the host can clear its fields.
	OnReset func()

	state State
}

func (s *Submitter) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return s.Logger
}

// State reports the current send state.
func (s *Submitter) State() State { return s.state }

// ButtonLabel is the submit button caption for the current state.
func (s *Submitter) ButtonLabel() string {
	if s.state == Sending {
		return "Sending..."
	}
	return "Send Message"
}

// Submit validates f and, when valid, schedules the mail action after Delay.
// Validation failures are shown as error notifications and returned.
func (s *Submitter) Submit(f Form) error {
	if s.state == Sending {
		return ErrBusy
	}
	if err := f.Validate(); err != nil {
		s.show(UserMessage(err), notify.Error)
		return err
	}
	s.state = Sending
	url := f.MailtoURL(s.Recipient)

	finish := func() {
		if s.Launch != nil {
			if err := s.Launch(url); err != nil {
				s.logger().Printf("launching mail client: %v", err)
				s.state = Idle
				s.show(fmt.Sprintf("Could not open mail client: %v", err), notify.Error)
				return
			}
		}
		s.show("Message sent successfully!", notify.Success)
		s.state = Idle
		if s.OnReset != nil {
			s.OnReset()
		}
	}

	time.AfterFunc(s.Delay, func() {
		if s.Post != nil {
			s.Post(finish)
			return
		}
		finish()
	})
	return nil
}

func (s *Submitter) show(msg string, kind notify.Kind) {
	if s.Notifier != nil {
		s.Notifier.Show(msg, kind)
	}
}
