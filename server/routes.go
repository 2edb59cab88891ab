package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("POST "+s.config.GetCreatePath(), s.CreateHandler())
	s.RegisterRouteFunc("POST "+s.config.GetPollPath(), s.PollHandler())

	// Wallets call back over GET per LUD-04; POST is accepted as well.
	s.RegisterRouteFunc("GET "+s.config.GetCallbackPath(), s.CallbackHandler())
	s.RegisterRouteFunc("POST "+s.config.GetCallbackPath(), s.CallbackHandler())

	s.RegisterRouteFunc("POST "+s.config.GetTokenPath(), s.TokenHandler())

	s.RegisterRouteFunc("GET "+s.config.GetQRPath()+"/{file}", s.QRHandler())
	s.RegisterRouteFunc("GET "+s.config.GetAvatarPath()+"/{file}", s.AvatarHandler())

	s.RegisterRouteFunc("GET /.well-known/lnauth-configuration", s.ProviderConfigHandler())

	s.RegisterRouteFunc("/api/lnauth/", s.NotFoundHandler())
}
