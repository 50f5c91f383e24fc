package models

import "time"

// File is the metadata row of an externally stored upload.
type File struct {
	ID           int64     `json:"id"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	Mimetype     string    `json:"mimetype"`
	UploadedByID int64     `json:"uploadedById"`
	TaskID       *int64    `json:"taskId"`
	ProjetoID    *int64    `json:"projetoId"`
	CreatedAt    time.Time `json:"createdAt"`

	UploadedBy *UserRef `json:"uploadedBy,omitempty"`
}

type FileFilter struct {
	TaskID    *int64
	ProjetoID *int64
}

// FileAssociation is the change set of an association edit. A nil pointer
// with the matching Set flag clears the column.
type FileAssociation struct {
	TaskID     *int64
	SetTask    bool
	ProjetoID  *int64
	SetProjeto bool
}
