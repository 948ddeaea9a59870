package domain

// Template describes a printable label layout. Templates are a fixed
// catalogue, not user-editable.
type Template struct {
	ID     string   `json:"id"`
	Name   string   `json:"nombre"`
	Size   string   `json:"tamano"`
	Fields []string `json:"campos"`
}

// Templates returns the label catalogue. Returned fresh on each call so
// callers cannot mutate the shared definition.
func Templates() []Template {
	return []Template{
		{
			ID:     "estandar",
			Name:   "Etiqueta Estándar",
			Size:   "5x7cm",
			Fields: []string{"codigo", "producto", "fechaTueste", "fechaCaducidad", "pesoKg"},
		},
		{
			ID:     "premium",
			Name:   "Etiqueta Premium",
			Size:   "7x10cm",
			Fields: []string{"codigo", "producto", "origen", "tipoTueste", "fechaTueste", "fechaCaducidad", "pesoKg"},
		},
		{
			ID:     "compacta",
			Name:   "Etiqueta Compacta",
			Size:   "4x5cm",
			Fields: []string{"codigo", "fechaCaducidad"},
		},
		{
			ID:     "promocional",
			Name:   "Etiqueta Promocional",
			Size:   "6x8cm",
			Fields: []string{"codigo", "producto", "origen", "precio"},
		},
	}
}

type PrintRequest struct {
	LotID      int    `json:"lotId" binding:"required"`
	TemplateID string `json:"templateId" binding:"required"`
	Copies     int    `json:"copias"`
}

// PrintJob is the acknowledgement for a queued print. Actual rendering
// happens on the client side.
type PrintJob struct {
	JobID      string `json:"jobId"`
	LotCode    string `json:"codigoLote"`
	TemplateID string `json:"templateId"`
	Copies     int    `json:"copias"`
	Status     string `json:"status"`
}

const JobStatusQueued = "Queued"
