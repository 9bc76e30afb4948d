package order

import "fmt"

// progressEmail renders the customer-facing progress notification. The shop
// writes to its customers in French only.
func progressEmail(customerName, shortID, productTitle, colorName string, progress, articleIndex int) (subject, html string) {
	articleText := ""
	if articleIndex > 0 {
		articleText = fmt.Sprintf(" (Article #%d)", articleIndex)
	}

	if progress == 100 {
		subject = fmt.Sprintf("Commande %s%s – Votre création est prête !", shortID, articleText)
	} else {
		subject = fmt.Sprintf("Commande %s%s – Suivi de la confection artisanale (%d%%)", shortID, articleText, progress)
	}

	closing := "<p>Nous vous tiendrons informé dès que la confection sera terminée.</p>"
	if progress == 100 {
		closing = "<p><strong>Bonne nouvelle !</strong> Votre article est prêt pour la livraison.</p>"
	}

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <p><strong>Bonjour %s</strong>,</p>
  <p>
    Votre article <strong>%s</strong> (Couleur : <strong>%s</strong>)%s,
    dans la commande n°<strong>%s</strong>, est actuellement <strong>terminé à %d%%</strong>.
  </p>
  %s
  <hr />
  <p style="font-size: 0.9em; color: #666;">
    Merci pour votre confiance.<br />
    Lina Optic
  </p>
</div>`, customerName, productTitle, colorName, articleText, shortID, progress, closing)

	return subject, html
}
