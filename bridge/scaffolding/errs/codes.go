package errs

// The set of error codes the HTTP layer knows how to answer.
var (
	InvalidArgument = ErrCode{value: 1}
	NotFound        = ErrCode{value: 2}
	Internal        = ErrCode{value: 3}
	Unavailable     = ErrCode{value: 4}

	// InternalOnlyLog is logged with its real message and answered as a
	// generic Internal error.
	InternalOnlyLog = ErrCode{value: 5}
)

var codeNames = map[ErrCode]string{
	InvalidArgument: "invalid_argument",
	NotFound:        "not_found",
	Internal:        "internal",
	Unavailable:     "unavailable",
	InternalOnlyLog: "internal_only_log",
}

var codeByName = func() map[string]ErrCode {
	m := make(map[string]ErrCode, len(codeNames))
	for code, name := range codeNames {
		m[name] = code
	}
	return m
}()
