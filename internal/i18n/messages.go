package i18n

import "github.com/gamevault-next/internal/constants"

// messages 各语言文案表
var messages = map[string]map[string]string{
	constants.LocaleEn: {
		"success":                      "success",
		"error.bad_request":            "invalid request",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "forbidden",
		"error.not_found":              "not found",
		"error.internal":               "internal server error",
		"error.rate_limited":           "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable": "rate limiter unavailable",
		"error.auth_header_missing":    "authorization header missing",
		"error.auth_header_invalid":    "authorization header invalid",
		"error.token_invalid":          "token invalid or expired",
		"error.jwt_secret_missing":     "jwt secret not configured",
		"error.email_taken":            "email already registered",
		"error.invalid_credentials":    "invalid email or password",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",
		"error.user_not_found":         "user not found",
		"error.game_not_found":         "game not found",
		"error.game_unavailable":       "game is not available",
		"error.cart_empty":             "cart is empty",
		"error.cart_item_exists":       "game already in cart",
		"error.already_owned":          "game already owned",
		"error.coupon_invalid":         "invalid coupon code",
		"error.coupon_expired":         "coupon has expired",
		"error.coupon_exhausted":       "coupon usage limit reached",
		"error.coupon_already_used":    "coupon already used by this account",
		"error.coupon_code_taken":      "coupon code already exists",
		"error.insufficient_funds":     "insufficient wallet funds",
		"error.quantity_invalid":       "invalid quantity",
		"error.amount_invalid":         "invalid amount",
		"error.login_too_many":         "too many login attempts, retry in %d seconds",
		"error.user_id_invalid":        "invalid user id",
		"error.user_id_type_invalid":   "user id type invalid",
	},
	constants.LocaleTh: {
		"success":                      "สำเร็จ",
		"error.bad_request":            "คำขอไม่ถูกต้อง",
		"error.unauthorized":           "ไม่ได้รับอนุญาต",
		"error.forbidden":              "ไม่มีสิทธิ์เข้าถึง",
		"error.not_found":              "ไม่พบข้อมูล",
		"error.internal":               "เกิดข้อผิดพลาดภายในระบบ",
		"error.rate_limited":           "คำขอมากเกินไป กรุณาลองใหม่ใน %d วินาที",
		"error.rate_limit_unavailable": "ระบบจำกัดคำขอไม่พร้อมใช้งาน",
		"error.auth_header_missing":    "ไม่พบ authorization header",
		"error.auth_header_invalid":    "authorization header ไม่ถูกต้อง",
		"error.token_invalid":          "โทเคนไม่ถูกต้องหรือหมดอายุ",
		"error.jwt_secret_missing":     "ยังไม่ได้ตั้งค่า jwt secret",
		"error.email_taken":            "อีเมลนี้ถูกใช้งานแล้ว",
		"error.invalid_credentials":    "อีเมลหรือรหัสผ่านไม่ถูกต้อง",
		"error.password_min_length":      "รหัสผ่านต้องมีอย่างน้อย %d ตัวอักษร",
		"error.password_require_upper":   "รหัสผ่านต้องมีตัวพิมพ์ใหญ่",
		"error.password_require_lower":   "รหัสผ่านต้องมีตัวพิมพ์เล็ก",
		"error.password_require_number":  "รหัสผ่านต้องมีตัวเลข",
		"error.password_require_special": "รหัสผ่านต้องมีอักขระพิเศษ",
		"error.user_not_found":         "ไม่พบผู้ใช้",
		"error.game_not_found":         "ไม่พบเกม",
		"error.game_unavailable":       "เกมนี้ไม่พร้อมจำหน่าย",
		"error.cart_empty":             "ตะกร้าว่างเปล่า",
		"error.cart_item_exists":       "เกมนี้อยู่ในตะกร้าแล้ว",
		"error.already_owned":          "คุณเป็นเจ้าของเกมนี้แล้ว",
		"error.coupon_invalid":         "คูปองไม่ถูกต้อง",
		"error.coupon_expired":         "คูปองหมดอายุแล้ว",
		"error.coupon_exhausted":       "คูปองถูกใช้ครบจำนวนแล้ว",
		"error.coupon_already_used":    "บัญชีนี้ใช้คูปองนี้ไปแล้ว",
		"error.coupon_code_taken":      "รหัสคูปองนี้มีอยู่แล้ว",
		"error.insufficient_funds":     "ยอดเงินในกระเป๋าไม่เพียงพอ",
		"error.quantity_invalid":       "จำนวนไม่ถูกต้อง",
		"error.amount_invalid":         "จำนวนเงินไม่ถูกต้อง",
		"error.login_too_many":         "พยายามเข้าสู่ระบบมากเกินไป กรุณาลองใหม่ใน %d วินาที",
		"error.user_id_invalid":        "รหัสผู้ใช้ไม่ถูกต้อง",
		"error.user_id_type_invalid":   "ชนิดข้อมูลรหัสผู้ใช้ไม่ถูกต้อง",
	},
}
