package clients

import (
	"context"
	"runtime"
)

// Browser opens URLs in the desktop's default browser.
type Browser struct {
	*Exec
	goos string
}

func (e *Exec) Browser() *Browser { return &Browser{Exec: e, goos: runtime.GOOS} }

func (b *Browser) Open(ctx context.Context, url string) error {
	name, args := openCommand(b.goos, url)
	_, err := b.run(ctx, name, args...)
	return err
}

func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	default:
		return "xdg-open", []string{url}
	}
}
