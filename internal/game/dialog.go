package game

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/portfolio-backdrop/internal/contact"
)

// Prompt asks for one line of text. It blocks until the user answers.
type Prompt func(title, label, initial string) (string, error)

var errCanceled = errors.New("dialog canceled")

func zenityPrompt(title, label, initial string) (string, error) {
	s, err := zenity.Entry(label, zenity.Title(title), zenity.EntryText(initial))
	if errors.Is(err, zenity.ErrCanceled) {
		return "", errCanceled
	}
	return s, err
}

// collectForm asks for each contact field in turn, prefilled from prev.
// Cancelling any dialog abandons the whole form.
func collectForm(ask Prompt, prev contact.Form) (contact.Form, error) {
	fields := []struct {
		label string
		dst   *string
		init  string
	}{
		{"Your name", &prev.Name, prev.Name},
		{"Your email", &prev.Email, prev.Email},
		{"Subject (optional)", &prev.Subject, prev.Subject},
		{"Message", &prev.Message, prev.Message},
	}
	for _, f := range fields {
		v, err := ask("Contact", f.label, f.init)
		if err != nil {
			return contact.Form{}, err
		}
		*f.dst = v
	}
	return prev, nil
}

// openURL hands url to the desktop's default handler.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}
