package domain

import "time"

// DefectImage is one entry of the defect image gallery, independent of the
// single photo slot on the defect itself.
type DefectImage struct {
	ID        int64
	DefectID  int64
	Filename  string
	ImageData []byte
	CreatedAt time.Time
}
