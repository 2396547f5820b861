package global

import "github.com/spf13/afero"

type Instances struct {
	// Fs holds the input and receives the output.
	Fs afero.Fs
}
