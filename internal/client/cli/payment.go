package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/cvpro/internal/payment"
)

// WidgetProvider stands in for the hosted payment widget in a terminal: it
// shows the charge and asks the user how the widget run ended. The rest of
// the pipeline cannot tell the difference, which is the point.
type WidgetProvider struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewWidgetProvider(reader *bufio.Reader, out io.Writer) *WidgetProvider {
	return &WidgetProvider{reader: reader, out: out}
}

var _ payment.Provider = (*WidgetProvider)(nil)

func (p *WidgetProvider) Collect(ctx context.Context, req payment.Request) (payment.Outcome, error) {
	fmt.Fprintf(p.out, "Payment of %d %s (reference %s)\n", req.Amount, req.Currency, req.Reference)

	for {
		answer, err := GetSimpleText(p.reader, "Complete the payment: (s)uccess, (p)ending, (c)ancel", p.out)
		if err != nil {
			return payment.Cancelled, err
		}
		switch strings.ToLower(answer) {
		case "s", "success":
			return payment.Success, nil
		case "p", "pending":
			return payment.Pending, nil
		case "c", "cancel", "cancelled", "":
			return payment.Cancelled, nil
		}
		fmt.Fprintln(p.out, "Please answer s, p or c")
	}
}
