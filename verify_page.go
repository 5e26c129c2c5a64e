package auth

import "fmt"

// The verify endpoint is opened from an email client, so it answers
// with a small HTML page that bounces the browser back to the app.

const verifyPageTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta http-equiv="refresh" content="3;url=%s" />
    <title>%s</title>
    <style>
      body { font-family: sans-serif; text-align: center; margin-top: 15%%; }
    </style>
  </head>
  <body>
    <h1>%s</h1>
    <p>%s</p>
    <p>You will be redirected shortly. <a href="%s">Click here</a> if nothing happens.</p>
  </body>
</html>`

// VerifySuccessPage is returned once the email is confirmed and the
// session cookies are set.
func VerifySuccessPage(origin string) string {
	return fmt.Sprintf(verifyPageTemplate,
		origin,
		"Email Verified",
		"Email Verified",
		"Your email has been verified and you are now signed in.",
		origin,
	)
}

// VerifyFailurePage is returned for bad tokens and unknown accounts.
func VerifyFailurePage(origin, reason string) string {
	return fmt.Sprintf(verifyPageTemplate,
		origin,
		"Verification Failed",
		"Verification Failed",
		reason,
		origin,
	)
}
