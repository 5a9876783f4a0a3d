package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/roach88/protosim/internal/sim"
	"github.com/roach88/protosim/internal/validator"
)

// Default layout.
const (
	DefaultWidth    = 78
	DefaultBarWidth = 55
)

const banner = `
╔══════════════════════════════════════════════════════════════════════════╗
║               Naoris Protocol Automation Bot v1.8.3                      ║
║                  Decentralized Protection Network                        ║
╚══════════════════════════════════════════════════════════════════════════╝
`

var _ sim.Renderer = (*Console)(nil)

// Console writes the session to an io.Writer. Write errors are ignored, as
// with fmt.Println.
type Console struct {
	w        io.Writer
	width    int
	barWidth int
}

// New returns a Console. Non-positive sizes fall back to the defaults.
func New(w io.Writer, width, barWidth int) *Console {
	if width <= 0 {
		width = DefaultWidth
	}
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	return &Console{w: w, width: width, barWidth: barWidth}
}

func (c *Console) println(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(c.w, l)
	}
}

func (c *Console) rule() string {
	return strings.Repeat("═", c.width)
}

// section prints a centered title between two rules, framed by blank lines.
func (c *Console) section(title string) {
	c.println("", c.rule(), center(title, c.width), c.rule(), "")
}

// StartHeader announces the process start.
func (c *Console) StartHeader() {
	c.section("  Starting Naoris Protocol Bot")
}

// AccountsLoaded reports how many accounts the file held.
func (c *Console) AccountsLoaded(count int, source string) {
	if count > 0 {
		c.println(fmt.Sprintf("📋 Loaded %d account(s) from %s", count, source))
	} else {
		c.println("⚠️  No accounts found in " + source)
	}
	c.println("")
}

// Menu prints the startup menu.
func (c *Console) Menu() {
	c.section("  Naoris Protocol Bot - Startup Menu")
	c.println(
		"  [1] Login with account credentials",
		"      → Access protection activation and whitelist management",
		"      → Send pings and monitor your protection score",
		"",
		"  [2] Continue without login",
		"      → Read-only mode: View network status and validators",
		"      → Limited functionality available",
		"",
		c.rule(),
		"",
	)
}

// Ask prints the selection prompt without a newline.
func (c *Console) Ask() {
	fmt.Fprint(c.w, "Select an option [1-2]: ")
}

// InvalidSelection rejects a menu answer.
func (c *Console) InvalidSelection() {
	c.println("❌ Invalid selection. Please enter 1 or 2.", "")
}

// LoginHeader opens the authentication section.
func (c *Console) LoginHeader() {
	c.section("  Naoris Protocol - Account Authentication")
}

// Authenticating announces the number of accounts to check.
func (c *Console) Authenticating(count int, source string) {
	c.println(fmt.Sprintf("🔄 Authenticating %d account(s) from %s...", count, source), "")
}

// AccountProgress prints the per-account progress line.
func (c *Console) AccountProgress(index, total int, label string) {
	c.println(fmt.Sprintf("[%d/%d] Processing account: %s...", index, total, label))
}

// AccountOutcome prints one validation result.
func (c *Console) AccountOutcome(outcome validator.Outcome) {
	if !outcome.Succeeded {
		c.println("    ❌ Failed: " + outcome.Message)
		return
	}
	c.println("    ✅ Success")
}

// AuthenticationFailed prints the aggregate failure and remediation hints.
func (c *Console) AuthenticationFailed(source string) {
	c.println(
		"",
		"❌ All Accounts Authentication Failed",
		"   Unable to authenticate any accounts from "+source,
		"",
		"💡 Possible reasons:",
		"   • Accounts not whitelisted in Naoris Protocol",
		"   • Device hashes expired or invalid",
		"   • Network connection issues with validators",
		"",
	)
}

// NoAccounts reports an empty account file during login.
func (c *Console) NoAccounts(source string) {
	c.println(
		"⚠️  No accounts found in "+source,
		"   Please add your accounts to the file and restart the bot.",
		"",
	)
}

// ProceedingReadOnly announces the read-only fallback.
func (c *Console) ProceedingReadOnly() {
	c.println("Proceeding in read-only mode...", "")
}

// Banner prints the boxed product banner.
func (c *Console) Banner() {
	fmt.Fprint(c.w, banner)
	c.println("")
}

// SessionHeader prints the mode-dependent header under the banner.
func (c *Console) SessionHeader(h sim.Header) {
	if h.Authenticated {
		c.println(
			"🔐 Device Hash: "+h.DeviceHash,
			"📊 Protection Score: "+formatTenths(h.ProtectionScore)+" /100",
			"🌐 Network Latency: "+formatTenths(h.Latency)+" ms",
			"✅ Whitelist Status: APPROVED",
		)
	} else {
		c.println(
			"⚠️  Running in read-only mode (no account connected)",
			"🌐 Network Latency: "+formatTenths(h.Latency)+" ms",
			"📡 Active Validators: "+strconv.Itoa(h.ActiveValidators),
		)
	}
	c.println("", c.rule(), "")
}

// Progress overwrites the current line with the bar for stage index/total.
func (c *Console) Progress(stage string, index, total int) {
	fmt.Fprint(c.w, ProgressLine(stage, index, total, c.barWidth))
}

// StageError prints a synthetic error and the recovery attempt.
func (c *Console) StageError(message string) {
	c.println("", "", "⚠️  ERROR: "+message, "   → Attempting recovery...")
}

// RecoveryFailed closes a synthetic error notice.
func (c *Console) RecoveryFailed() {
	c.println("   ✗ Recovery unsuccessful. Skipping operation.", "")
}

// Summary prints the boxed closing summary.
func (c *Console) Summary(elapsed time.Duration, status string) {
	c.println(
		"",
		"",
		c.rule(),
		center("  Session completed with errors", c.width),
		center(fmt.Sprintf("  Duration: %.1fs | Status: %s", elapsed.Seconds(), status), c.width),
		c.rule(),
		"",
		"⚠️  Some operations failed. Review logs for details.",
		"",
	)
}

// ProgressLine renders "\r[bar] pct% | stage". The fill and percentage are
// truncated, not rounded.
func ProgressLine(stage string, index, total, barWidth int) string {
	filled := 0
	percent := 0
	if total > 0 {
		filled = index * barWidth / total
		percent = index * 100 / total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	return fmt.Sprintf("\r[%s] %d%% | %s", bar, percent, stage)
}

// center pads s to width. An odd margin puts the extra space on the left
// for odd widths and on the right for even widths.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	marg := width - n
	left := marg/2 + (marg & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left)
}

func formatTenths(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
