package pkg

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt" // go get github.com/golang-jwt/jwt
	"github.com/google/uuid"    // go get github.com/google/uuid
	"golang.org/x/crypto/bcrypt"
)

/* https://codevoweb.com/how-to-properly-use-jwt-for-authentication-in-golang/ */

type UserSession struct {
	SID    uuid.UUID    `json:"sid"`
	REFTok string       `json:"ref_token"`
	ACCTok string       `json:"acc_token"`
	USR    UserResponse `json:"user"`
}

type UserSessionMap map[string]UserSession

var UserSessions = make(UserSessionMap)
var UserSessionsRWMutex = sync.RWMutex{}

func UserSessionsMapWrite(u UserSession) (err error) {

	sid := u.SID.String()
	if sid == "" || sid == "00000000-0000-0000-0000-000000000000" {
		err = fmt.Errorf("Invalid user session ID.")
		return
	}

	UserSessionsRWMutex.Lock()
	UserSessions[sid] = u
	UserSessionsRWMutex.Unlock()
	return
}
func UserSessionsMapRead(sid string) (u UserSession, err error) {
	UserSessionsRWMutex.Lock()
	u = UserSessions[sid]
	UserSessionsRWMutex.Unlock()

	if u.SID.String() == "00000000-0000-0000-0000-000000000000" {
		err = fmt.Errorf("User session not found. Please log in.")
	}
	return
}
func UserSessionsMapRemove(sid string) {
	UserSessionsRWMutex.Lock()
	delete(UserSessions, sid)
	UserSessionsRWMutex.Unlock()
}

func RegisterUser(runp RegisterUserInput) (user User, err error) {

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(runp.Password), bcrypt.DefaultCost)
	if err != nil {
		return user, LogErr(err)
	}

	user = User{
		Name:     runp.Name,
		Email:    strings.ToLower(runp.Email),
		Password: string(hashedPassword),
		Role:     "viewer",
	}
	if res := CTMS.DB.Create(&user); res.Error != nil {
		err = fmt.Errorf("Failed to create user: %s", res.Error.Error())
	}
	return
}

func LoginUser(lunp LoginUserInput) (us UserSession, err error) {

	user := User{}
	/* CHECK EMAIL */
	res := CTMS.DB.First(&user, "email = ?", strings.ToLower(lunp.Email))
	if res.Error != nil {
		err = fmt.Errorf("Invalid email or password")
		return
	}

	/* CHECK PASSWORD */
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(lunp.Password)); err != nil {
		err = fmt.Errorf("Invalid email or password")
		return
	}

	us.SID = uuid.New()
	us.USR = user.FilterUserRecord()

	/* CREATE REFRESH TOKEN */
	if err = us.CreateJWTRefreshToken(Conf.JWTRefExpiredIn); err != nil {
		err = fmt.Errorf("Refresh token generation failed: %s", err.Error())
		return
	}

	/* CREATE ACCESS TOKEN */
	if err = us.CreateJWTAccessToken(); err != nil {
		err = fmt.Errorf("Access token generation failed: %s", err.Error())
		return
	}

	err = UserSessionsMapWrite(us)
	return
}

func (us *UserSession) LogoutUser() {
	UserSessionsMapRemove(us.SID.String())
}

/* VERIFY THE REFRESH TOKEN AND ISSUE A NEW ACCESS TOKEN */
func (us *UserSession) RefreshAccessToken() (err error) {

	mus, err := UserSessionsMapRead(us.SID.String())
	if err != nil {
		return
	}

	ref_claims, err := GetClaimsFromTokenString(mus.REFTok)
	if err != nil {
		return
	}

	exp := int64(ref_claims["exp"].(float64))
	now := time.Now().UTC().Unix()
	if exp < now {
		return fmt.Errorf("Your refresh token has expired. Please log in.")
	}

	if err = us.CreateJWTAccessToken(); err != nil {
		return
	}

	return UserSessionsMapWrite(*us)
}

/* CREATES A JWT REFRESH TOKEN; USED ON LOGIN ONLY */
func (us *UserSession) CreateJWTRefreshToken(dur time.Duration) (err error) {

	tokByte := jwt.New(jwt.SigningMethodHS256)
	tokClaims := tokByte.Claims.(jwt.MapClaims)
	tokClaims["sub"] = us.USR.ID
	tokClaims["exp"] = time.Now().UTC().Add(dur).Unix()

	us.REFTok, err = tokByte.SignedString([]byte(Conf.JWTSecret))
	if err != nil {
		err = fmt.Errorf("Failed to sign refresh token: %s", err.Error())
	}
	return
}

/* CREATES A JWT ACCESS TOKEN; USED ON LOGIN AND SUBSEQUENT REFRESHES */
func (us *UserSession) CreateJWTAccessToken() (err error) {

	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub": us.USR.ID,   // SUBJECT
		"rol": us.USR.Role, // ROLE
		"exp": now.Add(Conf.JWTExpiredIn).Unix(),
		"iat": now.Unix(), // ISSUED AT
		"nbf": now.Unix(), // NOT VALID BEFORE
	}
	tokenByte := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	us.ACCTok, err = tokenByte.SignedString([]byte(Conf.JWTSecret))
	if err != nil {
		err = fmt.Errorf("Failed to sign access token: %s", err.Error())
	}
	return
}

func GetClaimsFromTokenString(token string) (claims jwt.MapClaims, err error) {

	/* PARSE TOKEN STRING */
	tokenByte, err := jwt.Parse(token, func(jwtToken *jwt.Token) (interface{}, error) {
		if _, ok := jwtToken.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %s", jwtToken.Header["alg"])
		}
		return []byte(Conf.JWTSecret), nil
	})
	if err != nil {
		return
	}

	claims, ok := tokenByte.Claims.(jwt.MapClaims)
	if !ok || !tokenByte.Valid {
		err = fmt.Errorf("Invalid token claim.")
		return
	}
	return
}

func GetUserList() (users []UserResponse, err error) {

	us := []User{}
	res := CTMS.DB.Table("users").Select("*").Scan(&us)
	if res.Error != nil {
		err = fmt.Errorf("Failed to retrieve users from database: %s", res.Error.Error())
		return
	}

	for _, user := range us {
		users = append(users, user.FilterUserRecord())
	}
	return
}
