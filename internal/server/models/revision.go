package models

import (
	"time"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/server/markdown"
)

// Revision is a versioned hardware-spec snapshot belonging to one
// machine.
type Revision struct {
	ID                int64     `db:"id"`
	CPUMake           string    `db:"cpu_make"`
	CPUName           string    `db:"cpu_name"`
	CPUSocket         string    `db:"cpu_socket"`
	CPUMhz            int64     `db:"cpu_mhz"`
	CPUProcCores      int64     `db:"cpu_proc_cores"`
	Chipset           string    `db:"chipset"`
	SystemMemoryMB    int64     `db:"system_memory_mb"`
	SystemMemoryMhz   int64     `db:"system_memory_mhz"`
	GPUName           string    `db:"gpu_name"`
	GPUMake           string    `db:"gpu_make"`
	GPUMemoryMB       int64     `db:"gpu_memory_mb"`
	RevisionNotes     string    `db:"revision_notes"`
	RevisionNotesHTML string    `db:"revision_notes_html"`
	PCPartPickerURL   string    `db:"pcpartpicker_url"`
	Timestamp         time.Time `db:"timestamp"`
	AuthorID          int64     `db:"author_id"`
	MachineID         int64     `db:"machine_id"`
}

// SetNotes replaces the revision notes and recomputes the sanitized
// HTML rendering in the same call, so the derived column can never go
// stale.
func (r *Revision) SetNotes(notes string) {
	r.RevisionNotes = notes
	r.RevisionNotesHTML = markdown.ToSafeHTML(notes)
}

// RevisionInput is the request payload for creating a revision. The
// author and parent machine are set by the caller.
type RevisionInput struct {
	CPUMake         string `json:"cpu_make"`
	CPUName         string `json:"cpu_name"`
	CPUSocket       string `json:"cpu_socket"`
	CPUMhz          int64  `json:"cpu_mhz"`
	CPUProcCores    int64  `json:"cpu_proc_cores"`
	Chipset         string `json:"chipset"`
	SystemMemoryMB  int64  `json:"system_memory_mb"`
	SystemMemoryMhz int64  `json:"system_memory_mhz"`
	GPUName         string `json:"gpu_name"`
	GPUMake         string `json:"gpu_make"`
	GPUMemoryMB     int64  `json:"gpu_memory_mb"`
	RevisionNotes   string `json:"revision_notes"`
	PCPartPickerURL string `json:"pcpartpicker_url"`
}

// NewRevisionFromRequest validates the payload and returns a
// partially-populated revision. A missing cpu_make is a
// ValidationError naming the field.
func NewRevisionFromRequest(in RevisionInput) (*Revision, error) {
	if in.CPUMake == "" {
		return nil, common.NewValidationError("revision", "cpu_make")
	}
	r := &Revision{
		CPUMake:         in.CPUMake,
		CPUName:         in.CPUName,
		CPUSocket:       in.CPUSocket,
		CPUMhz:          in.CPUMhz,
		CPUProcCores:    in.CPUProcCores,
		Chipset:         in.Chipset,
		SystemMemoryMB:  in.SystemMemoryMB,
		SystemMemoryMhz: in.SystemMemoryMhz,
		GPUName:         in.GPUName,
		GPUMake:         in.GPUMake,
		GPUMemoryMB:     in.GPUMemoryMB,
		PCPartPickerURL: in.PCPartPickerURL,
	}
	r.SetNotes(in.RevisionNotes)
	return r, nil
}

// RevisionPatch carries the updatable revision fields. Nil pointers
// mean "leave as is". Patched notes go through SetNotes so the HTML
// column tracks them.
type RevisionPatch struct {
	CPUMake         *string `json:"cpu_make"`
	CPUName         *string `json:"cpu_name"`
	CPUSocket       *string `json:"cpu_socket"`
	CPUMhz          *int64  `json:"cpu_mhz"`
	CPUProcCores    *int64  `json:"cpu_proc_cores"`
	Chipset         *string `json:"chipset"`
	SystemMemoryMB  *int64  `json:"system_memory_mb"`
	SystemMemoryMhz *int64  `json:"system_memory_mhz"`
	GPUName         *string `json:"gpu_name"`
	GPUMake         *string `json:"gpu_make"`
	GPUMemoryMB     *int64  `json:"gpu_memory_mb"`
	RevisionNotes   *string `json:"revision_notes"`
	PCPartPickerURL *string `json:"pcpartpicker_url"`
}

func (p RevisionPatch) Apply(r *Revision) error {
	if p.CPUMake != nil {
		if *p.CPUMake == "" {
			return common.NewValidationError("revision", "cpu_make")
		}
		r.CPUMake = *p.CPUMake
	}
	if p.CPUName != nil {
		r.CPUName = *p.CPUName
	}
	if p.CPUSocket != nil {
		r.CPUSocket = *p.CPUSocket
	}
	if p.CPUMhz != nil {
		r.CPUMhz = *p.CPUMhz
	}
	if p.CPUProcCores != nil {
		r.CPUProcCores = *p.CPUProcCores
	}
	if p.Chipset != nil {
		r.Chipset = *p.Chipset
	}
	if p.SystemMemoryMB != nil {
		r.SystemMemoryMB = *p.SystemMemoryMB
	}
	if p.SystemMemoryMhz != nil {
		r.SystemMemoryMhz = *p.SystemMemoryMhz
	}
	if p.GPUName != nil {
		r.GPUName = *p.GPUName
	}
	if p.GPUMake != nil {
		r.GPUMake = *p.GPUMake
	}
	if p.GPUMemoryMB != nil {
		r.GPUMemoryMB = *p.GPUMemoryMB
	}
	if p.RevisionNotes != nil {
		r.SetNotes(*p.RevisionNotes)
	}
	if p.PCPartPickerURL != nil {
		r.PCPartPickerURL = *p.PCPartPickerURL
	}
	return nil
}

// RevisionProjection is the JSON view of a revision returned over the API.
type RevisionProjection struct {
	URL               string    `json:"url"`
	Machine           string    `json:"machine"`
	CPUMake           string    `json:"cpu_make"`
	CPUName           string    `json:"cpu_name"`
	CPUSocket         string    `json:"cpu_socket"`
	CPUMhz            int64     `json:"cpu_mhz"`
	CPUProcCores      int64     `json:"cpu_proc_cores"`
	Chipset           string    `json:"chipset"`
	SystemMemoryMB    int64     `json:"system_memory_mb"`
	SystemMemoryMhz   int64     `json:"system_memory_mhz"`
	GPUName           string    `json:"gpu_name"`
	GPUMake           string    `json:"gpu_make"`
	GPUMemoryMB       int64     `json:"gpu_memory_mb"`
	RevisionNotes     string    `json:"revision_notes"`
	RevisionNotesHTML string    `json:"revision_notes_html"`
	PCPartPickerURL   string    `json:"pcpartpicker_url"`
	Timestamp         time.Time `json:"timestamp"`
	Author            string    `json:"author"`
}

func (r *Revision) Projection(urls *URLBuilder) RevisionProjection {
	return RevisionProjection{
		URL:               urls.Revision(r.ID),
		Machine:           urls.Machine(r.MachineID),
		CPUMake:           r.CPUMake,
		CPUName:           r.CPUName,
		CPUSocket:         r.CPUSocket,
		CPUMhz:            r.CPUMhz,
		CPUProcCores:      r.CPUProcCores,
		Chipset:           r.Chipset,
		SystemMemoryMB:    r.SystemMemoryMB,
		SystemMemoryMhz:   r.SystemMemoryMhz,
		GPUName:           r.GPUName,
		GPUMake:           r.GPUMake,
		GPUMemoryMB:       r.GPUMemoryMB,
		RevisionNotes:     r.RevisionNotes,
		RevisionNotesHTML: r.RevisionNotesHTML,
		PCPartPickerURL:   r.PCPartPickerURL,
		Timestamp:         r.Timestamp,
		Author:            urls.User(r.AuthorID),
	}
}
