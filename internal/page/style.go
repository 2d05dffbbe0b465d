package page

import "strings"

// styleProperty returns the value of prop in an inline style attribute.
// When prop is declared more than once the last declaration wins.
func styleProperty(style, prop string) string {
	var val string
	for _, decl := range strings.Split(style, ";") {
		name, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), prop) {
			val = strings.TrimSpace(v)
		}
	}
	return val
}

// setStyleProperty returns style with prop set to val, keeping the other
// declarations in order.
func setStyleProperty(style, prop, val string) string {
	var decls []string
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), prop) {
			if replaced {
				continue
			}
			decl = prop + ": " + val
			replaced = true
		}
		decls = append(decls, decl)
	}
	if !replaced {
		decls = append(decls, prop+": "+val)
	}
	return strings.Join(decls, "; ")
}
