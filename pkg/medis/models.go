package medis

// Tipe wire MedisServices. Field mengikuti kontrak upstream apa adanya;
// decoding bertipe di boundary client, bukan map[string]interface{}.

// PasienItem adalah satu pendaftaran pasien dari GetDataPasien.
type PasienItem struct {
	StatusPeriksa      string `json:"StatusPeriksa"`
	TglPendaftaran     string `json:"TglPendaftaran"`
	NoPendaftaran      string `json:"NoPendaftaran"`
	NoRM               string `json:"NoRM"`
	NamaPasien         string `json:"NamaPasien"`
	JenisPasien        string `json:"JenisPasien"`
	InstalasiPerawatan string `json:"InstalasiPerawatan"`
	RuanganPerawatan   string `json:"RuanganPerawatan"`
	Kelas              string `json:"Kelas"`
}

// BiayaItem adalah satu baris biaya dari GetBiayaTindakan maupun GetBiayaObat;
// kedua operasi memakai bentuk yang sama dan digabung ke satu pool oleh pemanggil.
type BiayaItem struct {
	NoPendaftaran     string   `json:"NoPendaftaran"`
	TglPelayanan      *string  `json:"TglPelayanan"`
	NamaPelayanan     *string  `json:"NamaPelayanan"`
	JmlPelayanan      *float64 `json:"JmlPelayanan"`
	Tarif             *float64 `json:"Tarif"`
	TotalBiaya        *float64 `json:"TotalBiaya"`
	NoStruk           *string  `json:"NoStruk"`
	NoBKM             *string  `json:"NoBKM"`
	RuanganTindakan   *string  `json:"RuanganTindakan"`
	InstalasiTindakan *string  `json:"InstalasiTindakan"`
	JmlHutangPenjamin *float64 `json:"JmlHutangPenjamin"`
	JmlTanggunganRS   *float64 `json:"JmlTanggunganRS"`
	JmlPembebasan     *float64 `json:"JmlPembebasan"`
	JmlHarusDiBayar   *float64 `json:"JmlHarusDiBayar"`
}

// VerifikasiItem adalah satu catatan verifikasi keuangan dari GetVerif, kunci NoBKM.
type VerifikasiItem struct {
	NoBKM                 string  `json:"NoBKM"`
	TglBKM                *string `json:"TglBKM"`
	TglVerifikasiKeuangan *string `json:"TglVerifikasiKeuangan"`
}

// Pegawai adalah identitas operator dashboard hasil MauLogin.
type Pegawai struct {
	IDPegawai   string `json:"IdPegawai"`
	Username    string `json:"Username"`
	KdRuangan   string `json:"kdruangan"`
	NamaRuangan string `json:"namaruangan"`
	NamaLengkap string `json:"namalengkap"`
}
