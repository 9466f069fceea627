package fieldcrypt

// Outcome classifies how Open treated its input.
type Outcome uint8

const (
	// Decrypted means a recognised envelope was opened.
	Decrypted Outcome = iota + 1
	// PassThrough means the input is not ciphertext and was returned as-is.
	PassThrough
	// Failed means the input looked like ciphertext but could not be recovered.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Decrypted:
		return "decrypted"
	case PassThrough:
		return "pass_through"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of Open. Err carries the reason for
// PassThrough and Failed outcomes and is meant for logs only.
type Result struct {
	Outcome Outcome
	Value   Value

	// Tagged is true when the payload carried FormatTag.
	Tagged bool
	Err    error
}

func decrypted(v Value, tagged bool) Result {
	return Result{Outcome: Decrypted, Value: v, Tagged: tagged}
}

func passThrough(original string, err error) Result {
	return Result{Outcome: PassThrough, Value: Text(original), Err: err}
}

func failed(err error) Result {
	return Result{Outcome: Failed, Value: Text(""), Err: err}
}
