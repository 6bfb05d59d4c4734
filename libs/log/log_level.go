package log

import (
	"errors"
	"fmt"
	"strings"
)

const defaultLogLevelKey = "*"

// ParseLogLevel builds a filter from a comma separated list of module:level
// pairs. "*" names every other module and a bare level is shorthand for
// "*:level". When "*" is absent defaultLogLevelValue applies.
//
// Example:
//
//	ParseLogLevel("signer:debug,verifier:info,*:error", NewOCLogger(os.Stdout), "info")
func ParseLogLevel(lvl string, logger Logger, defaultLogLevelValue string) (Logger, error) {
	if lvl == "" {
		return nil, errors.New("empty log level")
	}
	if !strings.Contains(lvl, ":") {
		lvl = defaultLogLevelKey + ":" + lvl
	}

	var (
		options    []Option
		hasDefault bool
	)
	for _, item := range strings.Split(lvl, ",") {
		module, level, ok := strings.Cut(item, ":")
		if !ok || strings.Contains(level, ":") {
			return nil, fmt.Errorf("expected \"module:level\" pairs, got %q in %q", item, lvl)
		}
		option, err := moduleOption(module, level)
		if err != nil {
			return nil, fmt.Errorf("pair %q in %q: %w", item, lvl, err)
		}
		options = append(options, option)
		hasDefault = hasDefault || module == defaultLogLevelKey
	}

	if !hasDefault {
		option, err := AllowLevel(defaultLogLevelValue)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}
	return NewFilter(logger, options...), nil
}

func moduleOption(module, level string) (Option, error) {
	if module == defaultLogLevelKey {
		return AllowLevel(level)
	}
	switch level {
	case "debug":
		return AllowDebugWith(moduleKey, module), nil
	case "info":
		return AllowInfoWith(moduleKey, module), nil
	case "error":
		return AllowErrorWith(moduleKey, module), nil
	case "none":
		return AllowNoneWith(moduleKey, module), nil
	default:
		return nil, fmt.Errorf("expected either \"info\", \"debug\", \"error\" or \"none\" level, given %s", level)
	}
}
