// Package seed provides helpers to create demo data for the state engine.
// These helpers are intended for development and demos only.
package seed

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"grandline/internal/activity"
	"grandline/internal/models"
	"grandline/internal/store"
)

// DemoPassword is shared by every demo account. It satisfies every password
// rule, space included.
const DemoPassword = "T3st L@bs"

// Options tunes the generated data set.
type Options struct {
	// ExtraPosts adds randomized filler posts on top of the scripted ones.
	ExtraPosts int
}

// Factory builds demo entities and feeds them through the store so ordering
// and persistence behave exactly as they would for live input.
type Factory struct {
	store *store.Store
	log   *activity.Log
	opts  Options
	base  int64
}

// NewFactory creates a Factory bound to the given store and activity log.
func NewFactory(s *store.Store, log *activity.Log, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		store: s,
		log:   log,
		opts:  opts,
		base:  time.Now().Unix(),
	}
}

// Demo loads the demo crew, their posts, comments, replies, likes and
// bookmarks, plus matching back-dated activity entries.
func Demo(ctx context.Context, s *store.Store, log *activity.Log, opts Options) error {
	return NewFactory(s, log, opts).Build(ctx)
}

// Build generates and stores the whole demo data set.
func (f *Factory) Build(ctx context.Context) error {
	crew := f.crew()
	for _, user := range crew {
		if err := f.store.AddUser(ctx, user); err != nil {
			return err
		}
	}

	if err := f.scriptedPosts(ctx, crew); err != nil {
		return err
	}

	for i := 0; i < f.opts.ExtraPosts; i++ {
		if err := f.fillerPost(ctx, crew); err != nil {
			return err
		}
	}

	return nil
}

// past rewinds the base time by the given number of minutes.
func (f *Factory) past(minutes int) int64 {
	return f.base - int64(minutes)*60
}

func backdatePost(p *models.Post, ts int64) {
	p.CreatedTs = ts
	p.UpdatedTs = ts
}

func backdateComment(c *models.Comment, ts int64) {
	c.CreatedTs = ts
	c.UpdatedTs = ts
}

func backdateReply(r *models.Reply, ts int64) {
	r.CreatedTs = ts
	r.UpdatedTs = ts
}

func (f *Factory) crew() []*models.User {
	specs := []struct {
		firstname, lastname, username, description string
	}{
		{"Monkey", "D Luffy", "monkey_d_luffy", "Captain"},
		{"Roronoa", "Zoro", "roronoa_zoro", "Swordsman, 2nd Captain"},
		{"Nami", "", "nami", "Navigator"},
		{"Usopp", "", "usopp", "Sniper"},
		{"Sanji", "", "sanji", "Cook"},
		{"Tonytony", "Chopper", "tonytony_chopper", "Doctor"},
		{"Nico", "Robin", "nico_robin", "Archaeologist"},
		{"Franky", "", "franky", "Shipwright"},
		{"Brook", "", "brook", "Musician, Swordsman"},
		{"Jinbe", "", "jinbe", "Helmsman"},
	}

	users := make([]*models.User, 0, len(specs))
	for _, spec := range specs {
		user := models.NewUser(models.UserInput{
			Firstname: spec.firstname,
			Lastname:  spec.lastname,
			Username:  spec.username,
			Password:  DemoPassword,
		})
		user.Description = spec.description
		users = append(users, user)
	}
	return users
}

func (f *Factory) scriptedPosts(ctx context.Context, crew []*models.User) error {
	luffy, zoro, nami, usopp, sanji, chopper, robin, franky, brook, jinbe :=
		crew[0], crew[1], crew[2], crew[3], crew[4], crew[5], crew[6], crew[7], crew[8], crew[9]

	ids := func(users ...*models.User) []string {
		out := make([]string, 0, len(users))
		for _, u := range users {
			out = append(out, u.ID)
		}
		return out
	}
	allIDs := ids(crew...)

	// Luffy's declaration.
	p1 := models.NewPost(models.PostInput{
		UserID:  luffy.ID,
		Content: "I'll be King of the Pirates! ☠",
	})
	p1.Likes = append([]string{}, allIDs...)
	p1c1 := p1.AddComment(nami.ID, "Go Luffy! 💗")
	p1c1r := p1c1.AddReply(luffy.ID, "Oy nami! Hihihihihihihi 👍🏻")
	p1c1.Likes = ids(luffy, robin)
	p1c1r.Likes = ids(nami)
	backdateComment(p1c1, f.past(540))
	backdateReply(p1c1r, f.past(518))
	backdatePost(p1, f.past(543))
	f.log.AddAt(luffy.Username, models.ActionPostCreate, f.past(540))

	// Zoro vs Sanji.
	p2 := models.NewPost(models.PostInput{
		UserID:  zoro.ID,
		Content: "I'm the greatest swordsman in the world! ⚔",
	})
	p2.Likes = ids(luffy, zoro, nami, usopp, brook)
	p2c1 := p2.AddComment(sanji.ID, "🔥 you can't even properly slice a ham or fish fillet")
	p2c1r1 := p2c1.AddReply(zoro.ID, "🔥 you can't even kick a girl!")
	p2c1r2 := p2c1.AddReply(franky.ID, "awww! SUUUUUPPEER! 😎")
	p2c1r3 := p2c1.AddReply(luffy.ID, "hiiiihihihihihihi")
	for _, ts := range []int64{f.past(349)} {
		backdateComment(p2c1, ts)
		backdateReply(p2c1r1, ts)
		backdateReply(p2c1r2, ts)
		backdateReply(p2c1r3, ts)
	}
	backdatePost(p2, f.past(459))

	// Sanji cooking.
	p3 := models.NewPost(models.PostInput{
		UserID:  sanji.ID,
		Content: "img:https://i.redd.it/ti1v42gndzhy.png\n\nCooking for Nami and Robin 🥰",
	})
	p3.Likes = ids(luffy, usopp, brook, sanji)
	luffy.SavedPosts = append(luffy.SavedPosts, p3.ID)
	robin.SavedPosts = append(robin.SavedPosts, p3.ID)
	nami.SavedPosts = append(nami.SavedPosts, p3.ID)
	p3c1 := p3.AddComment(luffy.ID, "oy Sanji, meat! 😋🍖")
	p3c1r := p3c1.AddReply(sanji.ID, "Hahaha! Sure Luffy 😎")
	p3c1.Likes = ids(sanji, nami, usopp)
	p3c1r.Likes = ids(luffy)
	backdateComment(p3c1, f.past(301))
	backdateReply(p3c1r, f.past(301))
	backdatePost(p3, f.past(359))

	// Gear 5.
	gear5 := models.NewPost(models.PostInput{
		UserID:  luffy.ID,
		Content: "GEAR 5 Unlocked! 🔥🔥🔥🔥🔥",
	})
	gear5.Likes = append([]string{}, allIDs...)
	backdatePost(gear5, f.past(39))
	robin.SavedPosts = append(robin.SavedPosts, gear5.ID)
	zoro.SavedPosts = append(zoro.SavedPosts, gear5.ID)

	// Robin's thread, the busiest one.
	rp := models.NewPost(models.PostInput{
		UserID:  robin.ID,
		Content: "Have a great day everyone!",
	})
	rp.Likes = append([]string{}, allIDs...)
	sanji.SavedPosts = append(sanji.SavedPosts, rp.ID)

	rc1 := rp.AddComment(sanji.ID, "Robin swaaan 💘♥💖💓💙💚💛💜🧡💝💞😍")
	rc1r := rc1.AddReply(robin.ID, "Hehehe 😊")
	rc1.Likes = ids(robin, luffy, chopper)
	rc1r.Likes = ids(sanji, brook)
	backdateComment(rc1, f.past(19))
	backdateReply(rc1r, f.past(19))

	rc2 := rp.AddComment(brook.ID, "Ah Robin san, can I see your ...")
	rc2r1 := rc2.AddReply(nami.ID, "oy Brook! 👊🏻💢")
	rc2r2 := rc2.AddReply(brook.ID, "💀 yohohohoho!")
	rc2r3 := rc2.AddReply(robin.ID, "😂")
	rc2r1.Likes = ids(brook)
	rc2r3.Likes = ids(brook, sanji)
	backdateComment(rc2, f.past(7))
	backdateReply(rc2r1, f.past(7))
	backdateReply(rc2r2, f.past(5))
	backdateReply(rc2r3, f.past(5))

	rc3 := rp.AddComment(robin.ID, "Thank you all for supporting me")
	rc3r1 := rc3.AddReply(franky.ID, "Suuuuuper no problem 👍🏻")
	rc3r2 := rc3.AddReply(luffy.ID, "Hihihi, we will protect you!")
	rc3r3 := rc3.AddReply(robin.ID, "Luffy 😊")
	rc3.Likes = ids(luffy, zoro, nami, usopp, sanji, chopper, franky, brook)
	rc3r1.Likes = ids(robin, sanji, luffy, chopper)
	rc3r2.Likes = ids(robin, sanji, chopper, jinbe, zoro, brook)
	rc3r3.Likes = ids(luffy)
	ts := f.past(3)
	backdateComment(rc3, ts)
	backdateReply(rc3r1, ts)
	backdateReply(rc3r2, ts)
	backdateReply(rc3r3, ts)
	backdatePost(rp, f.past(25))

	f.log.AddAt(luffy.Username, models.ActionPostLike, ts)
	f.log.AddAt(brook.Username, models.ActionCommentLike, ts)
	f.log.AddAt(zoro.Username, models.ActionCommentLike, ts)
	f.log.AddAt(jinbe.Username, models.ActionCommentLike, ts)
	f.log.AddAt(chopper.Username, models.ActionCommentLike, ts)
	f.log.AddAt(sanji.Username, models.ActionCommentLike, ts)
	f.log.AddAt(robin.Username, models.ActionCommentCreate, ts)
	f.log.AddAt(franky.Username, models.ActionCommentReply, ts)
	f.log.AddAt(luffy.Username, models.ActionCommentReply, ts)
	f.log.AddAt(robin.Username, models.ActionCommentReply, ts)

	for _, post := range []*models.Post{p1, p2, p3, gear5, rp} {
		if err := f.store.AddPost(ctx, post); err != nil {
			return err
		}
	}

	// Bookmarks were written onto the users directly; push them through the
	// store so they are re-sorted and mirrored.
	for _, user := range []*models.User{luffy, zoro, nami, robin, sanji} {
		if err := f.store.UpdateUser(ctx, user); err != nil {
			return err
		}
	}

	return nil
}

// fillerPost adds one randomized post from a random crew member, with a
// sprinkle of likes and the occasional comment.
func (f *Factory) fillerPost(ctx context.Context, crew []*models.User) error {
	author := crew[gofakeit.Number(0, len(crew)-1)]

	content := gofakeit.Sentence(gofakeit.Number(3, 12))
	if len(content) > models.PostContentMaxLen {
		content = content[:models.PostContentMaxLen]
	}

	post := models.NewPost(models.PostInput{
		UserID:  author.ID,
		Content: content,
	})
	backdatePost(post, f.past(gofakeit.Number(60, 60*24*7)))

	for _, user := range crew {
		if gofakeit.Bool() {
			post.Like(user.ID)
		}
	}

	if gofakeit.Bool() {
		commenter := crew[gofakeit.Number(0, len(crew)-1)]
		comment := post.AddComment(commenter.ID, gofakeit.HipsterSentence(gofakeit.Number(2, 6)))
		backdateComment(comment, post.CreatedTs+60)
		post.UpdatedTs = post.CreatedTs
	}

	f.log.AddAt(author.Username, models.ActionPostCreate, post.CreatedTs)
	return f.store.AddPost(ctx, post)
}
