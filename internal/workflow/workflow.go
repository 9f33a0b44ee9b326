// Package workflow menjalankan mutasi privileged sebagai tabel langkah
// dengan kebijakan eksplisit per langkah: Fatal menghentikan seluruh
// operasi, Advisory hanya dicatat sebagai warning. Kebijakan
// abort-vs-continue jadi data, bukan try/catch tersebar.
package workflow

import (
	"context"

	"go.uber.org/zap"
)

type Severity int

const (
	// Fatal: kegagalan membatalkan operasi dan menjadi hasil operasi.
	Fatal Severity = iota
	// Advisory: kegagalan dicatat lalu eksekusi lanjut. Efek utama
	// yang sudah diterapkan tetap otoritatif.
	Advisory
)

type Step struct {
	Name     string
	Severity Severity
	Run      func(ctx context.Context) error
}

// Run mengeksekusi langkah secara berurutan. Error yang dikembalikan
// selalu berasal dari langkah Fatal; langkah Advisory tidak pernah
// mengubah hasil.
func Run(ctx context.Context, logger *zap.Logger, steps []Step) error {
	if logger == nil {
		logger = zap.L()
	}

	for _, step := range steps {
		err := step.Run(ctx)
		if err == nil {
			continue
		}

		if step.Severity == Fatal {
			logger.Error("workflow step failed",
				zap.String("step", step.Name),
				zap.Error(err),
			)
			return err
		}

		logger.Warn("workflow step failed, continuing",
			zap.String("step", step.Name),
			zap.Error(err),
		)
	}

	return nil
}
