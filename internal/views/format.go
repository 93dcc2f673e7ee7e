package views

import (
	"fmt"
	"math"
	"strconv"
)

// FormatStorageSize renders a storage footprint with binary (1024-based)
// units and always two decimals, e.g. 1536 → "1.50 KB" and 512 → "512.00 B".
// The strings are user-visible; exact formatting matters.
func FormatStorageSize(size int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	converted := float64(size)
	index := 0

	for converted >= 1024 && index < len(units)-1 {
		converted /= 1024
		index++
	}

	return fmt.Sprintf("%.2f %s", converted, units[index])
}

// FormatFileSize renders a single file's byte size the way the detail panel
// shows it: rounded to two decimals with trailing zeros dropped, e.g.
// 1536 → "1.5 KB", and zero rendered as "0 Bytes". Distinct from
// FormatStorageSize on purpose; the two surfaces have always formatted
// differently.
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	const k = 1024
	sizes := []string{"Bytes", "KB", "MB", "GB"}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(k)))
	if i < 0 {
		i = 0
	}
	if i >= len(sizes) {
		i = len(sizes) - 1
	}

	value := float64(bytes) / math.Pow(k, float64(i))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizes[i]
}
