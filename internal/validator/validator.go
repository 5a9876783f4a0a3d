// Package validator implements the simulated credential check.
//
// The check never succeeds. Which rejection message is returned is a pure
// function of the address and device hash: the Unicode code points of
// address+deviceHash are summed and reduced modulo the number of templates.
// Identical inputs always produce the identical Outcome.
package validator

// Outcome is the result of a credential check.
type Outcome struct {
	Succeeded bool
	Message   string
}

// Rejections lists the rejection templates in index order.
var Rejections = []string{
	"Authentication failed: Device hash not registered in Naoris network.",
	"Access denied: Address not found in whitelist database.",
	"Verification error: Could not validate credentials with protection nodes.",
	"Connection timeout: Unable to reach Naoris authentication servers.",
	"Invalid credentials: Address and device hash do not match records.",
}

// Deterministic is the content-derived validator. The zero value is ready to use.
type Deterministic struct{}

// Validate returns the rejection for (address, deviceHash).
func (Deterministic) Validate(address, deviceHash string) Outcome {
	return Outcome{
		Succeeded: false,
		Message:   Rejections[Index(address, deviceHash)],
	}
}

// Index returns the template index selected for (address, deviceHash).
// Summation is over code points, so it is case and order sensitive at the
// character level but independent of how the input is split between the two
// arguments.
func Index(address, deviceHash string) int {
	var sum uint64
	for _, r := range address {
		sum += uint64(r)
	}
	for _, r := range deviceHash {
		sum += uint64(r)
	}
	return int(sum % uint64(len(Rejections)))
}
