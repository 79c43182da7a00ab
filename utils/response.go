package utils

// APIResponse adalah amplop JSON semua endpoint.
//
//	sukses : { "status": true,  "message": "Kegiatan berhasil disimpan", "data": { ... } }
//	gagal  : { "status": false, "message": "catatan wajib diisi untuk penolakan", "errors": "..." }
type APIResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"` // string atau detail error binding
}

// BuildResponseSuccess untuk HTTP 200/201.
func BuildResponseSuccess(message string, data any) APIResponse {
	return APIResponse{Status: true, Message: message, Data: data}
}

// BuildResponseFailed untuk HTTP 4xx/5xx. Pesan dari AppError dipakai sebagai message
// sehingga frontend bisa menampilkannya langsung.
func BuildResponseFailed(message string, err any, data any) APIResponse {
	return APIResponse{Status: false, Message: message, Errors: err, Data: data}
}
