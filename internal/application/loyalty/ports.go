package loyalty

// QREncoder codifica un payload en una imagen QR y la devuelve como
// data URL PNG (data:image/png;base64,...).
type QREncoder interface {
	EncodeDataURL(payload []byte, sizePx int) (string, error)
}
