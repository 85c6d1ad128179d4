package consolidate

//go:generate go tool stringer -type=Path -output=path_string.go

// Path identifies how a merged model was produced.
type Path int

const (
	_ Path = iota // invalid

	// PathSingle - the canonical uid had exactly one instance.
	PathSingle
	// PathMulti - several instances were merged.
	PathMulti
	// PathReentrant - the input was already merged and only re-processed.
	PathReentrant
)
