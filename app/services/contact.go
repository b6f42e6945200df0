package services

import (
	"net/url"
	"strings"
)

// ContactTemplate is the prefilled message for general wholesale inquiries.
const ContactTemplate = "Hola! Quiero comprar al por mayor. ¿Me comparten disponibilidad, mínimo de compra y tiempos de entrega?"

// InquiryMessage is the prefilled message asking about one product.
func InquiryMessage(productName string) string {
	return "Hola! Quiero agregar a mi orden el producto " + productName +
		". Por favor quiero saber disponibilidad y cantidad minima para realizar el pedido"
}

// WhatsAppLink builds a wa.me link that opens a chat with message typed in.
// A leading + on number is dropped. The text is percent-encoded with %20
// for spaces.
func WhatsAppLink(number, message string) string {
	number = strings.TrimPrefix(strings.TrimSpace(number), "+")
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + number + "?text=" + text
}
