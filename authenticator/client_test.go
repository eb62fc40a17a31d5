package authenticator

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fysikteknologsektionen/ftek-login/authenticator/authtest"
)

type ClientTestSuite struct {
	suite.Suite
	idp    *authtest.Provider
	client *Client
	ctx    context.Context
}

func (suite *ClientTestSuite) SetupTest() {
	suite.idp = authtest.New(suite.T())
	suite.ctx = context.Background()
	suite.client = suite.newClient()
}

func (suite *ClientTestSuite) newClient() *Client {
	client, err := NewClient(Config{
		DiscoveryURL: suite.idp.DiscoveryURL(),
		ClientID:     suite.idp.ClientID,
		ClientSecret: suite.idp.ClientSecret,
		RedirectURL:  "https://ftek.se/?ftek_openid",
	}, WithHTTPClient(suite.idp.HTTPClient()))
	suite.Require().NoError(err)
	return client
}

func (suite *ClientTestSuite) adaClaims() map[string]any {
	return map[string]any{
		"email":       "ada@ftek.se",
		"given_name":  "Ada",
		"family_name": "Lovelace",
		"name":        "Ada Lovelace",
		"picture":     "https://example.com/ada.png",
	}
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) TestNewClient_RequiresSettings() {
	_, err := NewClient(Config{DiscoveryURL: suite.idp.DiscoveryURL()})
	suite.Error(err)
}

func (suite *ClientTestSuite) TestAuthorizationURL_CarriesStateAndParameters() {
	state := "0123456789abcdef0123456789abcdef"

	raw, err := suite.client.AuthorizationURL(suite.ctx, state, "nonce-1")
	suite.Require().NoError(err)

	u, err := url.Parse(raw)
	suite.Require().NoError(err)
	suite.Equal(suite.idp.URL()+authtest.AuthorizePath, u.Scheme+"://"+u.Host+u.Path)

	q := u.Query()
	suite.Equal(state, q.Get("state"))
	suite.Equal("code", q.Get("response_type"))
	suite.Equal(suite.idp.ClientID, q.Get("client_id"))
	suite.Equal("https://ftek.se/?ftek_openid", q.Get("redirect_uri"))
	suite.Equal("openid email profile", q.Get("scope"))
	suite.Equal("select_account", q.Get("prompt"))
	suite.Equal("nonce-1", q.Get("nonce"))
}

func (suite *ClientTestSuite) TestAuthorizationURL_DiscoveryFailure() {
	suite.idp.SetStatus(authtest.DiscoveryPath, http.StatusInternalServerError)

	_, err := suite.client.AuthorizationURL(suite.ctx, "state", "")

	var discErr *DiscoveryError
	suite.ErrorAs(err, &discErr)
}

func (suite *ClientTestSuite) TestExchangeCode_Success() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims(), RefreshToken: "rt-1"})

	token, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)
	suite.NotEmpty(token.AccessToken)
	suite.Equal("rt-1", token.RefreshToken)
	suite.Equal("rt-1", suite.client.CurrentRefreshToken())

	forms := suite.idp.TokenRequests()
	suite.Require().Len(forms, 1)
	suite.Equal("authorization_code", forms[0].Get("grant_type"))
	suite.Equal("code-1", forms[0].Get("code"))
	suite.Equal("https://ftek.se/?ftek_openid", forms[0].Get("redirect_uri"))
	suite.Equal(suite.idp.ClientID, forms[0].Get("client_id"))
	suite.Equal(suite.idp.ClientSecret, forms[0].Get("client_secret"))
}

func (suite *ClientTestSuite) TestExchangeCode_NonOKStatus() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims()})

	for _, status := range []int{http.StatusInternalServerError, http.StatusCreated, http.StatusBadRequest} {
		suite.idp.SetStatus(authtest.TokenPath, status)

		_, err := suite.newClient().ExchangeCode(suite.ctx, "code-1")

		var exErr *TokenExchangeError
		suite.Require().ErrorAs(err, &exErr)
		suite.Equal(status, exErr.StatusCode)
		suite.Equal("authorization_code", exErr.GrantType)
	}
}

func (suite *ClientTestSuite) TestExchangeCode_UnknownCode() {
	_, err := suite.client.ExchangeCode(suite.ctx, "nope")

	var exErr *TokenExchangeError
	suite.Require().ErrorAs(err, &exErr)
	suite.Equal(http.StatusBadRequest, exErr.StatusCode)
	suite.Empty(suite.client.CurrentRefreshToken())
}

func (suite *ClientTestSuite) TestExchangeRefreshToken_KeepsRefreshTokenWhenNotReissued() {
	suite.idp.AddRefreshToken("rt-1", authtest.Grant{Claims: suite.adaClaims()})

	token, err := suite.client.ExchangeRefreshToken(suite.ctx, "rt-1")
	suite.Require().NoError(err)
	suite.NotEmpty(token.AccessToken)
	suite.Equal("rt-1", suite.client.CurrentRefreshToken())

	forms := suite.idp.TokenRequests()
	suite.Require().Len(forms, 1)
	suite.Equal("refresh_token", forms[0].Get("grant_type"))
	suite.Equal("rt-1", forms[0].Get("refresh_token"))
}

func (suite *ClientTestSuite) TestExchangeRefreshToken_Rotated() {
	suite.idp.AddRefreshToken("rt-1", authtest.Grant{Claims: suite.adaClaims(), RefreshToken: "rt-2"})

	_, err := suite.client.ExchangeRefreshToken(suite.ctx, "rt-1")
	suite.Require().NoError(err)
	suite.Equal("rt-2", suite.client.CurrentRefreshToken())
}

func (suite *ClientTestSuite) TestExchangeRefreshToken_Rejected() {
	_, err := suite.client.ExchangeRefreshToken(suite.ctx, "revoked")

	var exErr *TokenExchangeError
	suite.Require().ErrorAs(err, &exErr)
	suite.Equal(http.StatusBadRequest, exErr.StatusCode)
	suite.Equal("refresh_token", exErr.GrantType)
}

func (suite *ClientTestSuite) TestExchangeRefreshToken_Empty() {
	_, err := suite.client.ExchangeRefreshToken(suite.ctx, "")

	var exErr *TokenExchangeError
	suite.ErrorAs(err, &exErr)
	suite.Empty(suite.idp.TokenRequests())
}

func (suite *ClientTestSuite) TestFetchUserInfo_WithoutToken() {
	_, err := suite.client.FetchUserInfo(suite.ctx)

	suite.True(errors.Is(err, ErrNoToken))
	suite.Zero(suite.idp.Hits(authtest.UserInfoPath))
}

func (suite *ClientTestSuite) TestFetchUserInfo_Success() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims()})
	_, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)

	identity, err := suite.client.FetchUserInfo(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("ada@ftek.se", identity.Email)
	suite.Equal("Ada", identity.GivenName)
	suite.Equal("Lovelace", identity.FamilyName)
	suite.Equal("Ada Lovelace", identity.Name)
	suite.Equal("https://example.com/ada.png", identity.Picture)
}

func (suite *ClientTestSuite) TestFetchUserInfo_Unauthorized() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims()})
	_, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)
	suite.idp.SetStatus(authtest.UserInfoPath, http.StatusUnauthorized)

	_, err = suite.client.FetchUserInfo(suite.ctx)

	var infoErr *UserInfoError
	suite.Require().ErrorAs(err, &infoErr)
	suite.Equal(http.StatusUnauthorized, infoErr.StatusCode)
}

func (suite *ClientTestSuite) TestFetchUserInfo_MissingEmail() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: map[string]any{"name": "No Mail"}})
	_, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)

	_, err = suite.client.FetchUserInfo(suite.ctx)

	var parseErr *ParseError
	suite.Require().ErrorAs(err, &parseErr)
	suite.Equal("email", parseErr.Field)
}

func (suite *ClientTestSuite) TestVerifyNonce_Matches() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims(), IDToken: true, Nonce: "nonce-1"})
	token, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)
	suite.NotEmpty(token.IDToken)

	suite.NoError(suite.client.VerifyNonce(suite.ctx, "nonce-1"))
}

func (suite *ClientTestSuite) TestVerifyNonce_Mismatch() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims(), IDToken: true, Nonce: "nonce-1"})
	_, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)

	var nonceErr *NonceError
	suite.ErrorAs(suite.client.VerifyNonce(suite.ctx, "nonce-2"), &nonceErr)
	suite.ErrorAs(suite.client.VerifyNonce(suite.ctx, ""), &nonceErr)
}

func (suite *ClientTestSuite) TestVerifyNonce_SkippedWithoutIDToken() {
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims()})
	_, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)

	suite.NoError(suite.client.VerifyNonce(suite.ctx, "anything"))
}

func (suite *ClientTestSuite) TestVerifyNonce_SkippedWithoutKeySet() {
	suite.idp.UpdateDiscovery(func(doc map[string]any) {
		delete(doc, "jwks_uri")
	})
	suite.idp.AddCode("code-1", authtest.Grant{Claims: suite.adaClaims(), IDToken: true, Nonce: "nonce-1"})
	_, err := suite.client.ExchangeCode(suite.ctx, "code-1")
	suite.Require().NoError(err)

	suite.NoError(suite.client.VerifyNonce(suite.ctx, "nonce-2"))
	suite.Zero(suite.idp.Hits(authtest.JWKSPath))
}

func (suite *ClientTestSuite) TestVerifyNonce_WithoutToken() {
	suite.ErrorIs(suite.client.VerifyNonce(suite.ctx, "nonce-1"), ErrNoToken)
}
