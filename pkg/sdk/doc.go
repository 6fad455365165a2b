// Package homechef embeds the Home Chef recipe assistant in a Go program
// without running the HTTP server.
//
// A Client owns the model clients, the embedding cache and the session
// registry. Each Session keeps three independent conversations: general
// recipe chat, dish photos, and questions answered from an uploaded cookbook.
//
//	client, _ := homechef.New(ctx, homechef.WithGemini(os.Getenv("GEMINI_API_KEY")))
//	defer client.Close()
//
//	s, _ := client.NewSession()
//	res, _ := s.Upload(ctx, "resep-nusantara.pdf", pdfBytes)
//	fmt.Println(res.Turn.Text)
//
//	turn, _ := s.Ask(ctx, "Bumbu apa saja untuk rendang?")
//	fmt.Println(turn.Text)
//
// Failures of the model are reported inside the returned Turn (ErrorKind is
// set) so callers can render them like any other reply. Returned errors mean
// the request itself was rejected: unknown session, empty input, wrong media
// type, exhausted budget under the reject policy.
package homechef
