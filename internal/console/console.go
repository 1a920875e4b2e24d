// Package console is the interactive menu front end over the inventory services.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"inventory-management/internal/domain"
	"inventory-management/internal/service"
	apperrors "inventory-management/pkg/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ruleWidth = 50
	// maxLineLength bounds one line of input; longer lines end the session with bufio.ErrTooLong.
	maxLineLength = 1 << 20
)

// errInputClosed ends the session when the input stream is exhausted.
var errInputClosed = errors.New("input closed")

// inputLine is one line read from the input, or the error that stopped reading.
type inputLine struct {
	text string
	err  error
}

// inputError is a malformed entry typed by the user.
type inputError string

func (e inputError) Error() string { return string(e) }

// ConnectionTester reports whether the database answers.
type ConnectionTester interface {
	TestConnection(ctx context.Context) bool
}

// Services are the operations the menus call into.
type Services struct {
	Suppliers *service.SupplierService
	Products  *service.ProductService
	Reports   *service.ReportService
	DB        ConnectionTester
}

type Console struct {
	in          *bufio.Scanner
	lines       <-chan inputLine
	out         io.Writer
	svc         Services
	logger      *zap.Logger
	interactive bool
}

// New builds a console reading commands from in and writing to out. When
// interactive is set the console waits for Enter after every action.
func New(in io.Reader, out io.Writer, svc Services, logger *zap.Logger, interactive bool) *Console {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &Console{
		in:          scanner,
		out:         out,
		svc:         svc,
		logger:      logger,
		interactive: interactive,
	}
}

// readLines scans the input on its own goroutine so prompts can also watch
// for cancellation. Closing stop releases the goroutine once its current
// read returns.
func (c *Console) readLines(stop <-chan struct{}) <-chan inputLine {
	lines := make(chan inputLine)
	go func() {
		defer close(lines)
		for c.in.Scan() {
			select {
			case lines <- inputLine{text: c.in.Text()}:
			case <-stop:
				return
			}
		}
		if err := c.in.Err(); err != nil {
			select {
			case lines <- inputLine{err: fmt.Errorf("reading input: %w", err)}:
			case <-stop:
			}
		}
	}()
	return lines
}

// Run shows the main menu until the user exits, the input ends or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Welcome to the Inventory Management System\n")
	c.logger.Info("Console session started")
	defer c.logger.Info("Console session ended")

	stop := make(chan struct{})
	defer close(stop)
	c.lines = c.readLines(stop)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := c.menu(ctx, "INVENTORY MANAGEMENT MENU", []string{
			"Manage Suppliers",
			"Manage Products",
			"Reports",
			"Stock Management",
			"System Settings",
		}, "Exit")
		if err != nil {
			return finish(err)
		}

		switch choice {
		case 0:
			c.printf("Goodbye!\n")
			return nil
		case 1:
			err = c.supplierMenu(ctx)
		case 2:
			err = c.productMenu(ctx)
		case 3:
			err = c.reportMenu(ctx)
		case 4:
			err = c.stockMenu(ctx)
		case 5:
			err = c.settingsMenu(ctx)
		}
		if err != nil {
			return finish(err)
		}
	}
}

// isFatal reports whether err ends the session instead of being shown to the user.
func isFatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return errors.Is(err, errInputClosed) || errors.Is(err, bufio.ErrTooLong)
}

func finish(err error) error {
	if errors.Is(err, errInputClosed) {
		return nil
	}
	return err
}

// submenu loops over a menu, dispatching choices to actions until 0 is picked.
func (c *Console) submenu(ctx context.Context, title string, options []string, actions map[int]func(context.Context) error) error {
	for {
		choice, err := c.menu(ctx, title, options, "Back to Main Menu")
		if err != nil {
			return err
		}
		if choice == 0 {
			return nil
		}
		action, ok := actions[choice]
		if !ok {
			continue
		}
		if err := c.afterAction(ctx, action(ctx)); err != nil {
			return err
		}
	}
}

// afterAction reports a failed action and, on a terminal, waits for Enter.
// Only errors that end the session are returned.
func (c *Console) afterAction(ctx context.Context, err error) error {
	if err != nil {
		if isFatal(ctx, err) {
			return err
		}
		c.report(err)
	}
	if c.interactive {
		if _, err := c.prompt(ctx, "\nPress Enter to continue..."); err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) report(err error) {
	var in inputError
	switch {
	case errors.As(err, &in):
		c.printf("❌ %s\n", in)
	case apperrors.IsValidation(err):
		se, _ := apperrors.As(err)
		c.printf("❌ %s\n", se.Message)
	case apperrors.IsPersistence(err):
		se, _ := apperrors.As(err)
		c.logger.Error("Database operation failed", zap.Error(err), zap.String("details", se.Details))
		c.printf("❌ Database error: %s\n", se.Message)
	default:
		c.logger.Error("Unexpected console error", zap.Error(err))
		c.printf("❌ Unexpected error: %v\n", err)
	}
}

func (c *Console) menu(ctx context.Context, title string, options []string, exitLabel string) (int, error) {
	rule := strings.Repeat("=", ruleWidth)
	c.printf("\n%s\n  %s\n%s\n", rule, title, rule)
	for i, option := range options {
		c.printf("%d. %s\n", i+1, option)
	}
	c.printf("0. %s\n%s\n", exitLabel, rule)

	raw, err := c.prompt(ctx, fmt.Sprintf("Enter your choice (0-%d): ", len(options)))
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil || n < 0 || n > len(options) {
		c.printf("Invalid choice. Please enter a number between 0-%d.\n", len(options))
		return -1, nil
	}
	return n, nil
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// prompt prints label and waits for the next line or for ctx to end.
func (c *Console) prompt(ctx context.Context, label string) (string, error) {
	c.printf("%s", label)
	select {
	case <-ctx.Done():
		c.printf("\n")
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", errInputClosed
		}
		if line.err != nil {
			return "", line.err
		}
		return strings.TrimSpace(line.text), nil
	}
}

func (c *Console) promptID(ctx context.Context, label string) (int64, error) {
	raw, err := c.prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	id, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil || id <= 0 {
		return 0, inputError("Invalid ID: " + raw)
	}
	return id, nil
}

func (c *Console) confirm(ctx context.Context, label string) (bool, error) {
	raw, err := c.prompt(ctx, label)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(raw, "y") || strings.EqualFold(raw, "yes"), nil
}

// clearMarker typed while editing removes an optional value.
const clearMarker = "-"

// keep returns raw, or current when raw is blank.
func keep(raw, current string) string {
	if raw == "" {
		return current
	}
	return raw
}

func keepOptional(raw string, current domain.Optional[string]) string {
	switch raw {
	case "":
		return current.OrElse("")
	case clearMarker:
		return ""
	default:
		return raw
	}
}

func parseDecimal(raw, what string) (domain.Optional[decimal.Decimal], error) {
	if raw == "" {
		return domain.None[decimal.Decimal](), nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.None[decimal.Decimal](), inputError("Invalid " + what + " format: " + raw)
	}
	return domain.Some(d), nil
}

func parseInt(raw, what string) (domain.Optional[int], error) {
	if raw == "" {
		return domain.None[int](), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return domain.None[int](), inputError("Invalid " + what + ": " + raw)
	}
	return domain.Some(n), nil
}

func parseID(raw, what string) (domain.Optional[int64], error) {
	if raw == "" {
		return domain.None[int64](), nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.None[int64](), inputError("Invalid " + what + ": " + raw)
	}
	return domain.Some(n), nil
}
