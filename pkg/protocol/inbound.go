package protocol

// Frame is one decoded server-to-client message. Consumers type-switch on the
// concrete variant and ignore anything they do not act upon.
type Frame interface {
	frameType() string
}

type Accepted struct {
	Message string `json:"message"`
}

type AuthLevel struct {
	Value uint64 `json:"value"`
}

type Chat struct {
	Auth        uint64 `json:"auth"`
	Author      string `json:"author"`
	AuthorColor string `json:"author_color"` // raw 6-hex-digit string, not validated here
	AuthorID    uint64 `json:"author_id"`
	AuthorLevel uint64 `json:"author_level"`
	DonateValue string `json:"donate_value"`
	ID          uint64 `json:"id"`
	Message     string `json:"message"`
	Reply       uint64 `json:"reply"`
	Time        int64  `json:"time"` // milliseconds since the Unix epoch
}

type Delete struct {
	Messages []uint64 `json:"messages"`
}

type GetUserConf struct {
	Color string `json:"color"`
	Name  string `json:"name"`
}

type Join struct {
	Name string `json:"name"`
}

type Part struct {
	Name string `json:"name"`
}

type ServerMsg struct {
	Message string `json:"message"`
}

type Status struct {
	Status UserStatus `json:"status"`
}

// UserStatus is the closed enumeration carried by status frames.
type UserStatus string

const (
	StatusAuthenticated   UserStatus = "authenticated"
	StatusBanned          UserStatus = "banned"
	StatusNameExists      UserStatus = "nameexists"
	StatusNameInvalid     UserStatus = "nameinvalid"
	StatusNameLength      UserStatus = "namelength"
	StatusNameTimeout     UserStatus = "nametimeout"
	StatusRename          UserStatus = "rename"
	StatusSetUserConf     UserStatus = "setuserconf"
	StatusUnauthenticated UserStatus = "unauthenticated"
)

func (Accepted) frameType() string { return "accepted" }

func (AuthLevel) frameType() string { return "authlevel" }

func (Chat) frameType() string { return "chat" }

func (Delete) frameType() string { return "delete" }

func (GetUserConf) frameType() string { return "getuserconf" }

func (Join) frameType() string { return "join" }

func (Part) frameType() string { return "part" }

func (ServerMsg) frameType() string { return "servermsg" }

func (Status) frameType() string { return "status" }
