// Package namespace compiles namespace patterns into match rules.
//
// A pattern specification is a list of tokens separated by commas and/or
// whitespace. Each token matches a complete namespace; a '*' inside a token
// matches any (possibly empty) run of characters. A token prefixed with '-'
// disables the namespaces it matches:
//
//	rules := namespace.Compile("app:*,-app:db")
//	rules.Enabled("app:http") // true
//	rules.Enabled("app:db")   // false
//	rules.Enabled("other")    // false
//
// Disabling tokens always take precedence over enabling tokens, and a
// namespace that matches no token is disabled. The zero [Rules] value
// therefore enables nothing.
//
// Tokens are compiled as regular expressions after '*' expansion, so other
// regular expression metacharacters keep their meaning ("a.b" also matches
// "axb"). A token that does not compile is matched literally instead.
package namespace
