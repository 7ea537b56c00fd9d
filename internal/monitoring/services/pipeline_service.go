package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/c14220110/monitoring-biaya-backend/internal/monitoring/models"
	"github.com/c14220110/monitoring-biaya-backend/pkg/medis"
	"github.com/c14220110/monitoring-biaya-backend/pkg/utils"
)

const formatTanggal = "2006-01-02"

// PipelineService menjalankan agregasi monitoring biaya: rentang tanggal
// dipecah per batch hari, tiap sub-rentang mengambil pasien, biaya tindakan
// dan obat per chunk NoPendaftaran, menggabungkannya, lalu merekonsiliasi
// verifikasi keuangan per chunk NoBKM. Seluruh panggilan upstream berjalan
// berurutan dengan jeda antar chunk; itu throttle yang disengaja.
type PipelineService struct {
	client      *medis.Client
	batchHari   int
	batchUkuran int
	jedaFinal   time.Duration
	log         zerolog.Logger
}

func NewPipelineService(client *medis.Client, batchHari, batchUkuran int, log zerolog.Logger) *PipelineService {
	return &PipelineService{
		client:      client,
		batchHari:   batchHari,
		batchUkuran: batchUkuran,
		jedaFinal:   500 * time.Millisecond,
		log:         log,
	}
}

// Jalankan memulai pipeline dan mengembalikan channel event. Channel ditutup
// setelah tepat satu event terminal (complete atau error), atau lebih awal
// bila ctx dibatalkan; setelah pembatalan tidak ada panggilan upstream baru.
func (s *PipelineService) Jalankan(ctx context.Context, req models.ProsesRequest) <-chan models.Event {
	ch := make(chan models.Event, 16)
	go func() {
		defer close(ch)
		s.jalankan(ctx, req, ch)
	}()
	return ch
}

// JalankanSinkron menjalankan pipeline yang sama tanpa event antara dan hanya
// mengembalikan hasil akhir. Baris yang dihasilkan identik dengan mode stream.
func (s *PipelineService) JalankanSinkron(ctx context.Context, req models.ProsesRequest) ([]models.DataVerifikasiPelayanan, error) {
	var hasil []models.DataVerifikasiPelayanan
	var gagal error
	selesai := false

	for ev := range s.Jalankan(ctx, req) {
		switch e := ev.(type) {
		case models.CompleteEvent:
			hasil = e.Data
			selesai = true
		case models.ErrorEvent:
			gagal = errors.New(e.Error)
		}
	}
	if gagal != nil {
		return nil, gagal
	}
	if !selesai {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("pipeline berhenti tanpa hasil")
	}
	return hasil, nil
}

func (s *PipelineService) jalankan(ctx context.Context, req models.ProsesRequest, ch chan<- models.Event) {
	// emit berhenti mengirim begitu ctx dibatalkan
	emit := func(ev models.Event) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	gagal := func(err error) {
		s.log.Error().Err(err).Msg("pipeline monitoring berhenti")
		emit(models.NewErrorEvent(err.Error()))
	}

	awal, err := time.Parse(formatTanggal, req.TglAwal)
	if err != nil {
		gagal(fmt.Errorf("TglAwal tidak valid: %w", err))
		return
	}
	akhir, err := time.Parse(formatTanggal, req.TglAkhir)
	if err != nil {
		gagal(fmt.Errorf("TglAkhir tidak valid: %w", err))
		return
	}

	rentang, err := utils.SplitRentangTanggal(awal, akhir, s.batchHari)
	if err != nil {
		gagal(err)
		return
	}

	totalBatches := len(rentang)
	processedRecords := 0
	var semua []models.DataVerifikasiPelayanan

	// Persentase monotone naik; nilai antara tidak kontraktual tapi tidak
	// boleh mundur dan tidak boleh menyentuh 100 sebelum complete.
	terakhir := 0
	persen := func(frac float64) int {
		p := int(math.Round(frac / float64(totalBatches) * 100))
		if p < terakhir {
			p = terakhir
		}
		if p > 99 {
			p = 99
		}
		terakhir = p
		return p
	}

	if !emit(models.NewProgressEvent(0, 0, totalBatches, "Memulai proses pengambilan data...", 0, 0)) {
		return
	}

	for i, r := range rentang {
		awalStr := r.Awal.Format(formatTanggal)
		akhirStr := r.Akhir.Format(formatTanggal)
		batch := i + 1
		logRentang := s.log.With().Int("batch", batch).Str("awal", awalStr).Str("akhir", akhirStr).Logger()

		// Tahap 1: data pasien per sub-rentang
		if !emit(models.NewProgressEvent(persen(float64(i)), batch, totalBatches,
			fmt.Sprintf("Mengambil data pasien periode %s - %s...", awalStr, akhirStr),
			processedRecords, 0)) {
			return
		}
		pasien, err := s.client.GetDataPasien(ctx, awalStr, akhirStr, req.KdInstalasi)
		if err != nil {
			gagal(err)
			return
		}
		if len(pasien) == 0 {
			// Sub-rentang kosong bukan error: lewati, counter tetap maju
			logRentang.Debug().Msg("tidak ada pendaftaran pada sub-rentang")
			if !emit(models.NewProgressEvent(persen(float64(i+1)), batch, totalBatches,
				fmt.Sprintf("Tidak ada data untuk periode %s - %s", awalStr, akhirStr),
				processedRecords, 0)) {
				return
			}
			continue
		}

		// Tahap 2: biaya tindakan dan obat per chunk NoPendaftaran
		if !emit(models.NewProgressEvent(persen(float64(i)+0.25), batch, totalBatches,
			fmt.Sprintf("Mengambil data biaya pelayanan untuk %d pasien...", len(pasien)),
			processedRecords, len(pasien))) {
			return
		}
		daftarPendaftaran := DaftarNoPendaftaran(pasien)
		chunks := utils.ChunkSlice(daftarPendaftaran, s.batchUkuran)
		totalChunks := len(chunks)

		var poolBiaya []medis.BiayaItem
		for ci, chunk := range chunks {
			if !emit(models.NewProgressEvent(
				persen(float64(i)+0.25+float64(ci)/float64(totalChunks)*0.5),
				batch, totalBatches,
				fmt.Sprintf("Memproses biaya chunk %d/%d...", ci+1, totalChunks),
				processedRecords, len(pasien))) {
				return
			}

			tindakan, err := s.client.GetBiayaTindakan(ctx, chunk)
			if err != nil {
				gagal(err)
				return
			}
			poolBiaya = append(poolBiaya, tindakan...)
			if err := s.client.Jeda(ctx); err != nil {
				return
			}

			obat, err := s.client.GetBiayaObat(ctx, chunk)
			if err != nil {
				gagal(err)
				return
			}
			poolBiaya = append(poolBiaya, obat...)
			if err := s.client.Jeda(ctx); err != nil {
				return
			}
		}

		// Tahap 3: gabung pasien dan biaya
		if !emit(models.NewProgressEvent(persen(float64(i)+0.75), batch, totalBatches,
			"Menggabungkan data pasien dan biaya...",
			processedRecords, len(pasien))) {
			return
		}
		baris, yatim := GabungPasienBiaya(pasien, poolBiaya)
		if yatim > 0 {
			// Biaya tanpa pasangan pasien tidak pernah masuk hasil; perilaku
			// sistem upstream, dicatat agar tidak hilang tanpa jejak.
			logRentang.Warn().Int("jumlah", yatim).Msg("biaya tanpa pendaftaran yang cocok diabaikan")
		}
		processedRecords += len(baris)

		// Tahap 4: rekonsiliasi verifikasi keuangan per chunk NoBKM
		if !emit(models.NewProgressEvent(persen(float64(i)+0.85), batch, totalBatches,
			"Memproses data verifikasi keuangan...",
			processedRecords, len(pasien))) {
			return
		}
		daftarBKM := DaftarNoBKM(baris)
		if len(daftarBKM) > 0 {
			var dataVerifikasi []medis.VerifikasiItem
			chunkBKM := utils.ChunkSlice(daftarBKM, s.batchUkuran)
			for vi, chunk := range chunkBKM {
				if !emit(models.NewProgressEvent(
					persen(float64(i)+0.85+float64(vi)/float64(len(chunkBKM))*0.15),
					batch, totalBatches,
					fmt.Sprintf("Memproses verifikasi chunk %d/%d...", vi+1, len(chunkBKM)),
					processedRecords, len(pasien))) {
					return
				}
				verifikasi, err := s.client.GetVerifikasi(ctx, chunk)
				if err != nil {
					gagal(err)
					return
				}
				dataVerifikasi = append(dataVerifikasi, verifikasi...)
				if err := s.client.Jeda(ctx); err != nil {
					return
				}
			}
			TerapkanVerifikasi(baris, dataVerifikasi)
		}

		semua = append(semua, baris...)
		logRentang.Info().Int("baris", len(baris)).Int("pasien", len(pasien)).Msg("sub-rentang selesai")
	}

	if !emit(models.NewProgressEvent(persen(float64(totalBatches)*0.95), totalBatches, totalBatches,
		"Menyelesaikan proses...", processedRecords, processedRecords)) {
		return
	}

	if s.jedaFinal > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.jedaFinal):
		}
	}

	s.log.Info().Int("total", len(semua)).Msg("pipeline monitoring selesai")
	emit(models.NewCompleteEvent(semua))
}
