package admin

import handlershared "github.com/gamevault-next/internal/http/handlers/shared"

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}
