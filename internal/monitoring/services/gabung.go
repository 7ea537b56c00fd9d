package services

import (
	"github.com/c14220110/monitoring-biaya-backend/internal/monitoring/models"
	"github.com/c14220110/monitoring-biaya-backend/pkg/medis"
)

// GabungPasienBiaya menggabungkan daftar pasien satu sub-rentang dengan pool
// biaya (tindakan + obat). Satu pendaftaran menghasilkan satu baris per biaya
// yang NoPendaftaran-nya cocok, atau tepat satu baris kosong bila tidak ada
// biaya sama sekali. Urutan baris mengikuti urutan pasien, lalu urutan biaya
// di dalam satu pendaftaran.
//
// Nilai kembalian kedua adalah jumlah biaya yatim: baris biaya yang
// NoPendaftaran-nya tidak cocok dengan pasien mana pun. Biaya yatim tidak
// pernah masuk hasil karena iterasi berjalan per pasien; jumlahnya dikembalikan
// supaya pemanggil bisa mencatatnya.
func GabungPasienBiaya(pasien []medis.PasienItem, biaya []medis.BiayaItem) ([]models.DataVerifikasiPelayanan, int) {
	biayaPerPendaftaran := make(map[string][]medis.BiayaItem, len(pasien))
	adaPasien := make(map[string]bool, len(pasien))
	for _, p := range pasien {
		adaPasien[p.NoPendaftaran] = true
	}

	yatim := 0
	for _, b := range biaya {
		if !adaPasien[b.NoPendaftaran] {
			yatim++
			continue
		}
		biayaPerPendaftaran[b.NoPendaftaran] = append(biayaPerPendaftaran[b.NoPendaftaran], b)
	}

	hasil := make([]models.DataVerifikasiPelayanan, 0, len(pasien))
	for _, p := range pasien {
		items := biayaPerPendaftaran[p.NoPendaftaran]
		if len(items) == 0 {
			baris := barisDasar(p)
			baris.StatusValidasi = models.StatusBelumValidasiKasir
			hasil = append(hasil, baris)
			continue
		}
		for _, b := range items {
			hasil = append(hasil, barisDenganBiaya(p, b))
		}
	}
	return hasil, yatim
}

// barisDasar membuat baris gabungan tanpa biaya; seluruh field biaya nil.
func barisDasar(p medis.PasienItem) models.DataVerifikasiPelayanan {
	return models.DataVerifikasiPelayanan{
		StatusPeriksa:      p.StatusPeriksa,
		TglPendaftaran:     p.TglPendaftaran,
		NoPendaftaran:      p.NoPendaftaran,
		NoRM:               p.NoRM,
		NamaPasien:         p.NamaPasien,
		JenisPasien:        p.JenisPasien,
		InstalasiPerawatan: p.InstalasiPerawatan,
		RuanganPerawatan:   p.RuanganPerawatan,
		Kelas:              p.Kelas,
	}
}

func barisDenganBiaya(p medis.PasienItem, b medis.BiayaItem) models.DataVerifikasiPelayanan {
	jml := nilai(b.JmlPelayanan)
	totalHutangPenjamin := nilai(b.JmlHutangPenjamin) * jml
	totalTanggunganRS := nilai(b.JmlTanggunganRS) * jml
	totalPembebasan := nilai(b.JmlPembebasan) * jml
	totalHarusDiBayar := nilai(b.JmlHarusDiBayar) * jml
	// TotalHarusDiBayar sengaja tidak ikut dikurangkan; rumus upstream.
	grandTotal := nilai(b.TotalBiaya) - (totalHutangPenjamin + totalTanggunganRS + totalPembebasan)

	baris := barisDasar(p)
	baris.TglPelayanan = b.TglPelayanan
	baris.NamaPelayanan = b.NamaPelayanan
	baris.JmlPelayanan = b.JmlPelayanan
	baris.Tarif = b.Tarif
	baris.TotalBiaya = b.TotalBiaya
	baris.NoStruk = b.NoStruk
	baris.NoBKM = b.NoBKM
	baris.RuanganTindakan = b.RuanganTindakan
	baris.InstalasiTindakan = b.InstalasiTindakan
	baris.JmlHutangPenjamin = b.JmlHutangPenjamin
	baris.JmlTanggunganRS = b.JmlTanggunganRS
	baris.JmlPembebasan = b.JmlPembebasan
	baris.JmlHarusDiBayar = b.JmlHarusDiBayar
	baris.TotalHutangPenjamin = &totalHutangPenjamin
	baris.TotalTanggunganRS = &totalTanggunganRS
	baris.TotalPembebasan = &totalPembebasan
	baris.TotalHarusDiBayar = &totalHarusDiBayar
	baris.GrandTotal = &grandTotal
	baris.StatusValidasi = hitungStatusValidasi(&baris)
	return baris
}

// TerapkanVerifikasi mengisi ulang TglBKM dan TglVerifikasi pada baris yang
// NoBKM-nya ditemukan di catatan verifikasi, lalu menghitung ulang status
// validasi untuk setiap baris. Baris dimutasi di tempat.
func TerapkanVerifikasi(baris []models.DataVerifikasiPelayanan, verifikasi []medis.VerifikasiItem) {
	perBKM := make(map[string]medis.VerifikasiItem, len(verifikasi))
	for _, v := range verifikasi {
		perBKM[v.NoBKM] = v
	}

	for i := range baris {
		if baris[i].NoBKM != nil {
			if v, ok := perBKM[*baris[i].NoBKM]; ok {
				baris[i].TglBKM = v.TglBKM
				baris[i].TglVerifikasi = v.TglVerifikasiKeuangan
			}
		}
		baris[i].StatusValidasi = hitungStatusValidasi(&baris[i])
	}
}

// hitungStatusValidasi menentukan label tiga tingkat: belum ada NoBKM berarti
// belum divalidasi kasir, ada NoBKM tanpa tanggal verifikasi berarti sudah
// validasi kasir, keduanya ada berarti sudah verifikasi keuangan.
func hitungStatusValidasi(baris *models.DataVerifikasiPelayanan) string {
	if baris.NoBKM == nil || *baris.NoBKM == "" {
		return models.StatusBelumValidasiKasir
	}
	if baris.TglVerifikasi == nil || *baris.TglVerifikasi == "" {
		return models.StatusValidasiKasir
	}
	return models.StatusVerifikasiKeuangan
}

// DaftarNoBKM mengumpulkan NoBKM unik non-kosong dari baris gabungan,
// urutan kemunculan pertama dipertahankan.
func DaftarNoBKM(baris []models.DataVerifikasiPelayanan) []string {
	terlihat := make(map[string]bool)
	var daftar []string
	for i := range baris {
		if baris[i].NoBKM == nil || *baris[i].NoBKM == "" {
			continue
		}
		if !terlihat[*baris[i].NoBKM] {
			terlihat[*baris[i].NoBKM] = true
			daftar = append(daftar, *baris[i].NoBKM)
		}
	}
	return daftar
}

// DaftarNoPendaftaran mengumpulkan NoPendaftaran unik dari daftar pasien,
// urutan kemunculan pertama dipertahankan.
func DaftarNoPendaftaran(pasien []medis.PasienItem) []string {
	terlihat := make(map[string]bool)
	var daftar []string
	for _, p := range pasien {
		if !terlihat[p.NoPendaftaran] {
			terlihat[p.NoPendaftaran] = true
			daftar = append(daftar, p.NoPendaftaran)
		}
	}
	return daftar
}

func nilai(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
