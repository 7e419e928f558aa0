package validation

// PasswordPolicyMessage is returned to clients when a password fails
// the policy at registration.
const PasswordPolicyMessage = "Password must be at least 8 characters long, including at least one letter, one number, and one special character."

// passwordSymbols is the fixed set of allowed special characters.
const passwordSymbols = "@$!%*?&"

// ValidPassword reports whether password satisfies the registration
// policy: minimum 8 characters, at least one letter, one digit, and
// one symbol from the allowed set, with no characters outside
// letters, digits, and that set.
//
// The policy is equivalent to a lookahead regex; RE2 has no lookahead
// syntax, so the same acceptance semantics are written as explicit
// scans.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasLetter, hasDigit, hasSymbol bool
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case isPasswordSymbol(c):
			hasSymbol = true
		default:
			// Characters outside the allowed set reject the
			// whole password.
			return false
		}
	}

	return hasLetter && hasDigit && hasSymbol
}

func isPasswordSymbol(c byte) bool {
	for i := 0; i < len(passwordSymbols); i++ {
		if passwordSymbols[i] == c {
			return true
		}
	}
	return false
}
