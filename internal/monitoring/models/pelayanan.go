package models

// Status validasi baris gabungan, tiga tingkat. Teks persis yang dirender dashboard.
const (
	StatusBelumValidasiKasir = "❌ Belum Validasi Kasir"
	StatusValidasiKasir      = "⚠️ Validasi Kasir"
	StatusVerifikasiKeuangan = "✅ Verifikasi Keuangan"
)

// Kode instalasi yang dikenal form monitoring.
var KdInstalasiValid = map[string]string{
	"01": "Instalasi Gawat Darurat",
	"02": "Instalasi Rawat Jalan",
	"03": "Instalasi Rawat Inap",
}

// DataVerifikasiPelayanan adalah satu baris hasil gabungan: data pendaftaran
// pasien ditambah satu baris biaya (nil semua bila pendaftaran tanpa biaya),
// tanggal BKM/verifikasi hasil rekonsiliasi, dan field turunan moneter.
type DataVerifikasiPelayanan struct {
	StatusValidasi     string `json:"StatusValidasi"`
	StatusPeriksa      string `json:"StatusPeriksa"`
	TglPendaftaran     string `json:"TglPendaftaran"`
	NoPendaftaran      string `json:"NoPendaftaran"`
	NoRM               string `json:"NoRM"`
	NamaPasien         string `json:"NamaPasien"`
	JenisPasien        string `json:"JenisPasien"`
	InstalasiPerawatan string `json:"InstalasiPerawatan"`
	RuanganPerawatan   string `json:"RuanganPerawatan"`
	Kelas              string `json:"Kelas"`

	TglPelayanan      *string  `json:"TglPelayanan"`
	NamaPelayanan     *string  `json:"NamaPelayanan"`
	JmlPelayanan      *float64 `json:"JmlPelayanan"`
	Tarif             *float64 `json:"Tarif"`
	TotalBiaya        *float64 `json:"TotalBiaya"`
	NoStruk           *string  `json:"NoStruk"`
	NoBKM             *string  `json:"NoBKM"`
	TglBKM            *string  `json:"TglBKM"`
	TglVerifikasi     *string  `json:"TglVerifikasi"`
	RuanganTindakan   *string  `json:"RuanganTindakan"`
	InstalasiTindakan *string  `json:"InstalasiTindakan"`

	JmlHutangPenjamin *float64 `json:"JmlHutangPenjamin"`
	JmlTanggunganRS   *float64 `json:"JmlTanggunganRS"`
	JmlPembebasan     *float64 `json:"JmlPembebasan"`
	JmlHarusDiBayar   *float64 `json:"JmlHarusDiBayar"`

	// Field turunan: tarif satuan penjamin dikali JmlPelayanan.
	// TotalHarusDiBayar dihitung tetapi tidak ikut dikurangkan di GrandTotal;
	// itu rumus sistem upstream dan dipertahankan apa adanya.
	TotalHutangPenjamin *float64 `json:"TotalHutangPenjamin"`
	TotalTanggunganRS   *float64 `json:"TotalTanggunganRS"`
	TotalPembebasan     *float64 `json:"TotalPembebasan"`
	TotalHarusDiBayar   *float64 `json:"TotalHarusDiBayar"`
	GrandTotal          *float64 `json:"GrandTotal"`
}
