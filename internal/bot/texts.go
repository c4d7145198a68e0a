package bot

// Operator and fallback copy. Flow-step copy lives with its flow.
const (
	textNoPermission   = "⛔ Bạn không có quyền sử dụng lệnh này."
	textSessionExpired = "⌛ Phiên đã hết hạn. Gõ /greet để xem sản phẩm."
	textAddInPrivate   = "Vui lòng nhắn riêng cho bot rồi gõ /add để thêm sản phẩm."
	textDelUsage       = "Cách dùng: `/del <mã sản phẩm>`, ví dụ `/del P001`."
	textListEmpty      = "📭 Database trống, chưa có sản phẩm nào."
	textUnknown        = "Lệnh không hợp lệ. Gõ /help để xem danh sách lệnh."

	textHelp = "*Bot Hỗ Trợ cửa hàng*\n\n" +
		"/greet — bắt đầu tìm sản phẩm\n" +
		"/help — xem hướng dẫn\n\n" +
		"_Lệnh dành cho chủ shop:_\n" +
		"/add — thêm sản phẩm mới\n" +
		"/del `<mã>` — xóa sản phẩm\n" +
		"/list — liệt kê sản phẩm"
)
