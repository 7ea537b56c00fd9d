package utils

import (
	"errors"
	"time"
)

// ErrRentangTidakValid dikembalikan jika tanggal awal melebihi tanggal akhir.
var ErrRentangTidakValid = errors.New("tanggal awal melebihi tanggal akhir")

// RentangTanggal adalah satu sub-rentang inklusif [Awal, Akhir].
type RentangTanggal struct {
	Awal  time.Time
	Akhir time.Time
}

// SplitRentangTanggal membagi rentang inklusif [awal, akhir] menjadi sub-rentang
// berurutan selebar maksimal jumlahHari, tanpa celah dan tanpa tumpang tindih.
// Sub-rentang terakhir dipotong agar tidak melewati akhir.
func SplitRentangTanggal(awal, akhir time.Time, jumlahHari int) ([]RentangTanggal, error) {
	if jumlahHari <= 0 {
		return nil, errors.New("jumlahHari harus lebih dari 0")
	}
	awal = potongJam(awal)
	akhir = potongJam(akhir)
	if awal.After(akhir) {
		return nil, ErrRentangTidakValid
	}

	var hasil []RentangTanggal
	mulai := awal
	for !mulai.After(akhir) {
		selesai := mulai.AddDate(0, 0, jumlahHari-1)
		if selesai.After(akhir) {
			selesai = akhir
		}
		hasil = append(hasil, RentangTanggal{Awal: mulai, Akhir: selesai})
		mulai = selesai.AddDate(0, 0, 1)
	}
	return hasil, nil
}

func potongJam(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ChunkSlice memecah slice menjadi sub-slice berukuran maksimal ukuran,
// urutan elemen dipertahankan.
func ChunkSlice[T any](items []T, ukuran int) [][]T {
	if ukuran <= 0 || len(items) == 0 {
		return nil
	}
	var chunks [][]T
	for i := 0; i < len(items); i += ukuran {
		batas := i + ukuran
		if batas > len(items) {
			batas = len(items)
		}
		chunks = append(chunks, items[i:batas])
	}
	return chunks
}
