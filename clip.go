package softpipe

// clipNear clips a triangle against the plane z = near, keeping the part
// with z >= near. It returns up to two triangles in the winding order of
// the input. New vertices interpolate the whole attribute bundle.
func clipNear[P Attribute[P]](tri Triangle[P], near float64) ([2]Triangle[P], int) {
	var out [2]Triangle[P]
	v := [3]P{tri.V0, tri.V1, tri.V2}

	inside := 0
	var in [3]bool
	for i := range v {
		in[i] = v[i].Pos().Z() >= near
		if in[i] {
			inside++
		}
	}

	switch inside {
	case 3:
		out[0] = tri
		return out, 1
	case 0:
		return out, 0
	case 1:
		// rotate so v[0] is the vertex in front
		for !in[0] {
			v[0], v[1], v[2] = v[1], v[2], v[0]
			in[0], in[1], in[2] = in[1], in[2], in[0]
		}
		out[0] = Triangle[P]{V0: v[0], V1: intersectNear(v[0], v[1], near), V2: intersectNear(v[0], v[2], near)}
		return out, 1
	default:
		// rotate so v[2] is the vertex behind
		for in[2] {
			v[0], v[1], v[2] = v[1], v[2], v[0]
			in[0], in[1], in[2] = in[1], in[2], in[0]
		}
		a := intersectNear(v[1], v[2], near)
		b := intersectNear(v[2], v[0], near)
		out[0] = Triangle[P]{V0: v[0], V1: v[1], V2: a}
		out[1] = Triangle[P]{V0: v[0], V1: a, V2: b}
		return out, 2
	}
}

func intersectNear[P Attribute[P]](a, b P, near float64) P {
	za := a.Pos().Z()
	t := (near - za) / (b.Pos().Z() - za)
	return Lerp(a, b, t)
}
