package schema

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var patternCache sync.Map

// CompilePattern compiles a validation pattern. Plain expressions are used as
// is; delimited expressions such as "/^[a-z]+$/i" are unwrapped and the i, m
// and s flags are mapped onto Go inline flags. Compiled expressions are cached
// for the lifetime of the process.
func CompilePattern(expr string) (*regexp.Regexp, error) {
	if cached, ok := patternCache.Load(expr); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(translatePattern(expr))
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", expr, err)
	}
	actual, _ := patternCache.LoadOrStore(expr, re)
	return actual.(*regexp.Regexp), nil
}

func translatePattern(expr string) string {
	expr = strings.TrimSpace(expr)
	if len(expr) < 2 || expr[0] != '/' {
		return expr
	}
	end := strings.LastIndexByte(expr, '/')
	if end <= 0 {
		return expr
	}
	body, flags := expr[1:end], expr[end+1:]
	if strings.Trim(flags, "imsuxD") != "" {
		// Not a delimited pattern, e.g. "/docs/[a-z]+".
		return expr
	}
	var inline strings.Builder
	for _, flag := range flags {
		// u, x and D have no Go equivalent; Go regexps are UTF-8 aware.
		if flag == 'i' || flag == 'm' || flag == 's' {
			inline.WriteRune(flag)
		}
	}
	if inline.Len() == 0 {
		return body
	}
	return "(?" + inline.String() + ")" + body
}
