package reveal

import (
	"context"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDelay between two revealed lines.
const DefaultDelay = 50 * time.Millisecond

// Animator replays a complete response line by line, the way a streamed
// answer would appear.
type Animator struct {
	delay time.Duration
}

// New returns an Animator pausing `delay` after each line. A zero delay
// reveals everything at once.
func New(delay time.Duration) *Animator {
	return &Animator{delay: delay}
}

// Frames returns what is published for each line of response, in order.
// Every frame ends with a newline.
func Frames(response string) []string {
	lines := strings.Split(response, "\n")
	frames := make([]string, 0, len(lines))
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
		frames = append(frames, sb.String())
	}
	return frames
}

// Run publishes every frame of response, pausing after each one. When it
// returns nil the reveal is over and the caller commits the full response.
// Once ctx is done nothing more is published and ctx's error is returned.
func (a *Animator) Run(ctx context.Context, response string, publish func(partial string)) error {
	limiter := rate.NewLimiter(rate.Every(a.delay), 1)
	// The bucket starts full; the first pause must still last a full delay.
	limiter.Allow()
	for _, frame := range Frames(response) {
		if err := ctx.Err(); err != nil {
			return err
		}
		publish(frame)
		if err := limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
	}
	return ctx.Err()
}
